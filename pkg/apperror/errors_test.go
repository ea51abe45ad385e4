package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("STATE_002", "Payment has not completed OTP verification", http.StatusConflict),
			expected: "[STATE_002] Payment has not completed OTP verification",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] Internal server error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("VAL_002", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"Validation", Validation("bad field"), "VAL_001", 400},
		{"InvalidAmount", ErrInvalidAmount(), "VAL_002", 400},
		{"NoEligibleGoals", ErrNoEligibleGoals(), "VAL_003", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestStateErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidState", ErrInvalidState("wrong state"), "STATE_001", 409},
		{"PaymentNotVerified", ErrPaymentNotVerified(), "STATE_002", 409},
		{"OrderTerminal", ErrOrderTerminal(), "STATE_003", 409},
		{"InsufficientHoldings", ErrInsufficientHoldings("FUND_A"), "STATE_004", 409},
		{"VersionConflict", ErrVersionConflict(), "STATE_005", 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestAuthzErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidOtp", ErrInvalidOtp(), "AUTHZ_001", 403},
		{"OtpExpired", ErrOtpExpired(), "AUTHZ_002", 403},
		{"AttemptsExceeded", ErrAttemptsExceeded(), "AUTHZ_003", 403},
		{"InvalidMfaToken", ErrInvalidMfaToken(), "AUTHZ_004", 403},
		{"NotOwner", ErrNotOwner("Goal"), "AUTHZ_005", 403},
		{"InvalidToken", ErrInvalidToken(), "AUTHZ_006", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestProviderErrors(t *testing.T) {
	inner := fmt.Errorf("502 bad gateway")

	provErr := ErrProviderFailure(inner)
	assert.Equal(t, "PRV_001", provErr.Code)
	assert.Equal(t, 502, provErr.HTTPStatus)
	assert.True(t, errors.Is(provErr, inner))

	timeoutErr := ErrProviderTimeout(inner)
	assert.Equal(t, "PRV_002", timeoutErr.Code)
	assert.Equal(t, 502, timeoutErr.HTTPStatus)
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")

	sysErr := InternalError(inner)
	assert.Equal(t, "SYS_001", sysErr.Code)
	assert.Equal(t, 500, sysErr.HTTPStatus)
	assert.True(t, errors.Is(sysErr, inner))

	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_002", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
}

func TestRateLimitError(t *testing.T) {
	err := ErrRateLimitExceeded()
	assert.Equal(t, "RATE_001", err.Code)
	assert.Equal(t, 429, err.HTTPStatus)
}

func TestNotFoundEntity(t *testing.T) {
	err := ErrNotFound("Payment")
	assert.Contains(t, err.Message, "Payment")
	assert.Equal(t, "NF_001", err.Code)
	assert.Equal(t, 404, err.HTTPStatus)
}

func TestInsufficientHoldingsNamesFund(t *testing.T) {
	err := ErrInsufficientHoldings("FUND_B")
	assert.Contains(t, err.Message, "FUND_B")
}
