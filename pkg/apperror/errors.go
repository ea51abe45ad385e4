package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a generic 400 validation error with a descriptive message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("VAL_002", "Invalid amount", http.StatusBadRequest)
}

func ErrNoEligibleGoals() *AppError {
	return New("VAL_003", "No eligible draft goals for this beneficiary", http.StatusBadRequest)
}

// ---- State conflicts (STATE) ----

func ErrInvalidState(message string) *AppError {
	return New("STATE_001", message, http.StatusConflict)
}

func ErrPaymentNotVerified() *AppError {
	return New("STATE_002", "Payment has not completed OTP verification", http.StatusConflict)
}

func ErrOrderTerminal() *AppError {
	return New("STATE_003", "Order is already in a terminal state", http.StatusConflict)
}

func ErrInsufficientHoldings(fundID string) *AppError {
	return New("STATE_004", fmt.Sprintf("Requested units exceed holdings for fund %s", fundID), http.StatusConflict)
}

func ErrVersionConflict() *AppError {
	return New("STATE_005", "Record was modified concurrently, retry the operation", http.StatusConflict)
}

// ---- Authorization (AUTHZ) ----

func ErrInvalidOtp() *AppError {
	return New("AUTHZ_001", "Incorrect one-time passcode", http.StatusForbidden)
}

func ErrOtpExpired() *AppError {
	return New("AUTHZ_002", "One-time passcode has expired", http.StatusForbidden)
}

func ErrAttemptsExceeded() *AppError {
	return New("AUTHZ_003", "Maximum verification attempts exceeded", http.StatusForbidden)
}

func ErrInvalidMfaToken() *AppError {
	return New("AUTHZ_004", "MFA token is invalid or expired", http.StatusForbidden)
}

func ErrNotOwner(entity string) *AppError {
	return New("AUTHZ_005", fmt.Sprintf("%s belongs to a different user", entity), http.StatusForbidden)
}

func ErrInvalidToken() *AppError {
	return New("AUTHZ_006", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Not found (NF) ----

func ErrNotFound(entity string) *AppError {
	return New("NF_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- External provider (PRV) ----

// ErrProviderFailure wraps a provider error. The provider's response body is
// logged by the caller but never surfaced to the client.
func ErrProviderFailure(err error) *AppError {
	return Wrap("PRV_001", "Order submission failed at the fund provider", http.StatusBadGateway, err)
}

func ErrProviderTimeout(err error) *AppError {
	return Wrap("PRV_002", "Fund provider did not respond in time", http.StatusBadGateway, err)
}

// ---- Rate limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_002", "Internal database error", http.StatusInternalServerError, err)
}
