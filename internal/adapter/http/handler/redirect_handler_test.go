package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/internal/core/ports/mocks"
	"fund-order-platform/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testDeepLinkBase = "app://invest/return"

func getRequest(w *httptest.ResponseRecorder, id string) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	return c
}

func TestPaymentReturn_Completed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payments := mocks.NewMockPaymentRepository(ctrl)
	sipSvc := mocks.NewMockSipService(ctrl)
	h := NewRedirectHandler(payments, sipSvc, testDeepLinkBase, zerolog.Nop())

	paymentID := uuid.New()
	payments.EXPECT().GetByID(gomock.Any(), paymentID).Return(&domain.Payment{
		ID:     paymentID,
		Status: domain.PaymentStatusCompleted,
	}, nil)

	w := httptest.NewRecorder()
	h.PaymentReturn(getRequest(w, paymentID.String()))

	assert.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "flow=payment")
	assert.Contains(t, location, "outcome=success")
	assert.Contains(t, location, "payment_id="+paymentID.String())
}

func TestPaymentReturn_StillProcessing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payments := mocks.NewMockPaymentRepository(ctrl)
	sipSvc := mocks.NewMockSipService(ctrl)
	h := NewRedirectHandler(payments, sipSvc, testDeepLinkBase, zerolog.Nop())

	paymentID := uuid.New()
	payments.EXPECT().GetByID(gomock.Any(), paymentID).Return(&domain.Payment{
		ID:     paymentID,
		Status: domain.PaymentStatusActive,
	}, nil)

	w := httptest.NewRecorder()
	h.PaymentReturn(getRequest(w, paymentID.String()))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "outcome=processing")
}

func TestPaymentReturn_UnknownPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payments := mocks.NewMockPaymentRepository(ctrl)
	sipSvc := mocks.NewMockSipService(ctrl)
	h := NewRedirectHandler(payments, sipSvc, testDeepLinkBase, zerolog.Nop())

	paymentID := uuid.New()
	payments.EXPECT().GetByID(gomock.Any(), paymentID).Return(nil, nil)

	w := httptest.NewRecorder()
	h.PaymentReturn(getRequest(w, paymentID.String()))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "outcome=failure")
}

func TestPaymentReturn_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payments := mocks.NewMockPaymentRepository(ctrl)
	sipSvc := mocks.NewMockSipService(ctrl)
	h := NewRedirectHandler(payments, sipSvc, testDeepLinkBase, zerolog.Nop())

	w := httptest.NewRecorder()
	h.PaymentReturn(getRequest(w, "not-a-uuid"))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "outcome=failure")
}

func TestMandateReturn_TriggersSipSubmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payments := mocks.NewMockPaymentRepository(ctrl)
	sipSvc := mocks.NewMockSipService(ctrl)
	h := NewRedirectHandler(payments, sipSvc, testDeepLinkBase, zerolog.Nop())

	paymentID := uuid.New()
	mandateRef := "MND-1"
	payments.EXPECT().GetByID(gomock.Any(), paymentID).Return(&domain.Payment{
		ID:         paymentID,
		Status:     domain.PaymentStatusActive,
		MandateRef: &mandateRef,
	}, nil)

	submitted := make(chan uuid.UUID, 1)
	sipSvc.EXPECT().SubmitSipOrders(gomock.Any(), paymentID).DoAndReturn(
		func(_ context.Context, id uuid.UUID) error {
			submitted <- id
			return nil
		},
	)

	w := httptest.NewRecorder()
	h.MandateReturn(getRequest(w, paymentID.String()))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "flow=mandate")
	assert.Contains(t, w.Header().Get("Location"), "outcome=processing")

	select {
	case id := <-submitted:
		assert.Equal(t, paymentID, id)
	case <-time.After(2 * time.Second):
		t.Fatal("sip submission was not triggered")
	}
}

func TestMandateReturn_ProviderRejectionRefreshesMandateURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payments := mocks.NewMockPaymentRepository(ctrl)
	sipSvc := mocks.NewMockSipService(ctrl)
	h := NewRedirectHandler(payments, sipSvc, testDeepLinkBase, zerolog.Nop())

	paymentID := uuid.New()
	mandateRef := "MND-1"
	payments.EXPECT().GetByID(gomock.Any(), paymentID).Return(&domain.Payment{
		ID:         paymentID,
		Status:     domain.PaymentStatusActive,
		MandateRef: &mandateRef,
	}, nil)

	// The provider refuses the plans, so the investor needs a fresh
	// confirmation URL to re-authorize the mandate.
	sipSvc.EXPECT().SubmitSipOrders(gomock.Any(), paymentID).
		Return(apperror.ErrProviderFailure(errors.New("mandate not authorized")))
	refreshed := make(chan struct{}, 1)
	sipSvc.EXPECT().RefreshMandateURL(gomock.Any(), paymentID).DoAndReturn(
		func(_ context.Context, _ uuid.UUID) (string, error) {
			refreshed <- struct{}{}
			return "https://provider/mandates/MND-1/authorize", nil
		},
	)

	w := httptest.NewRecorder()
	h.MandateReturn(getRequest(w, paymentID.String()))

	assert.Equal(t, http.StatusFound, w.Code)
	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("mandate url refresh was not triggered")
	}
}

func TestMandateReturn_StateErrorSkipsRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payments := mocks.NewMockPaymentRepository(ctrl)
	sipSvc := mocks.NewMockSipService(ctrl)
	h := NewRedirectHandler(payments, sipSvc, testDeepLinkBase, zerolog.Nop())

	paymentID := uuid.New()
	mandateRef := "MND-1"
	payments.EXPECT().GetByID(gomock.Any(), paymentID).Return(&domain.Payment{
		ID:         paymentID,
		Status:     domain.PaymentStatusActive,
		MandateRef: &mandateRef,
	}, nil)

	// A replayed return leg finds the plans already placed; no refresh.
	done := make(chan struct{}, 1)
	sipSvc.EXPECT().SubmitSipOrders(gomock.Any(), paymentID).DoAndReturn(
		func(_ context.Context, _ uuid.UUID) error {
			defer func() { done <- struct{}{} }()
			return apperror.ErrInvalidState("no pending sip plans for this payment")
		},
	)

	w := httptest.NewRecorder()
	h.MandateReturn(getRequest(w, paymentID.String()))

	assert.Equal(t, http.StatusFound, w.Code)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sip submission was not triggered")
	}
}

func TestMandateReturn_NoMandateSkipsSubmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payments := mocks.NewMockPaymentRepository(ctrl)
	sipSvc := mocks.NewMockSipService(ctrl)
	h := NewRedirectHandler(payments, sipSvc, testDeepLinkBase, zerolog.Nop())

	paymentID := uuid.New()
	payments.EXPECT().GetByID(gomock.Any(), paymentID).Return(&domain.Payment{
		ID:     paymentID,
		Status: domain.PaymentStatusActive,
	}, nil)

	w := httptest.NewRecorder()
	h.MandateReturn(getRequest(w, paymentID.String()))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "outcome=processing")
}

// --- Health Check Tests ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                 { return s.name }
func (s stubChecker) Ping(_ context.Context) error { return s.err }

func TestHealthCheck_AllHealthy(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(stubChecker{name: "postgres"}, stubChecker{name: "redis"})(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestHealthCheck_Degraded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(stubChecker{name: "postgres"}, stubChecker{name: "redis", err: errors.New("connection refused")})(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), `"status":"degraded"`)
	assert.Contains(t, w.Body.String(), "connection refused")
}
