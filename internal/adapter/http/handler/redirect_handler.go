package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/internal/core/ports"
	"fund-order-platform/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RedirectHandler serves the browser return legs of the provider payment and
// mandate flows. Both endpoints land the investor back in the app through a
// deep link; the outcome shown is best-effort and reconciliation remains the
// source of truth.
type RedirectHandler struct {
	payments     ports.PaymentRepository
	sipSvc       ports.SipService
	deepLinkBase string
	log          zerolog.Logger
}

// NewRedirectHandler creates a new RedirectHandler.
func NewRedirectHandler(payments ports.PaymentRepository, sipSvc ports.SipService, deepLinkBase string, log zerolog.Logger) *RedirectHandler {
	return &RedirectHandler{payments: payments, sipSvc: sipSvc, deepLinkBase: deepLinkBase, log: log}
}

// PaymentReturn handles GET /redirect/payments/:id.
func (h *RedirectHandler) PaymentReturn(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, h.deepLink("payment", "failure", ""))
		return
	}

	payment, err := h.payments.GetByID(c.Request.Context(), paymentID)
	if err != nil || payment == nil {
		c.Redirect(http.StatusFound, h.deepLink("payment", "failure", paymentID.String()))
		return
	}

	outcome := "processing"
	switch payment.Status {
	case domain.PaymentStatusCompleted:
		outcome = "success"
	case domain.PaymentStatusFailed:
		outcome = "failure"
	}
	c.Redirect(http.StatusFound, h.deepLink("payment", outcome, paymentID.String()))
}

// MandateReturn handles GET /redirect/mandates/:id. A mandate the investor
// just authorized unblocks the SIP submission, which runs off the request
// goroutine so the redirect never waits on the provider.
func (h *RedirectHandler) MandateReturn(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, h.deepLink("mandate", "failure", ""))
		return
	}

	payment, err := h.payments.GetByID(c.Request.Context(), paymentID)
	if err != nil || payment == nil {
		c.Redirect(http.StatusFound, h.deepLink("mandate", "failure", paymentID.String()))
		return
	}

	if payment.MandateRef != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			err := h.sipSvc.SubmitSipOrders(ctx, paymentID)
			if err == nil {
				return
			}
			h.log.Warn().Err(err).Str("payment_id", paymentID.String()).Msg("sip submission after mandate return failed")
			// Provider rejection usually means the mandate was never
			// authorized; re-issue the confirmation URL for the retry.
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code == "PRV_001" {
				if _, refreshErr := h.sipSvc.RefreshMandateURL(ctx, paymentID); refreshErr != nil {
					h.log.Warn().Err(refreshErr).Str("payment_id", paymentID.String()).Msg("mandate url refresh failed")
				}
			}
		}()
	}

	c.Redirect(http.StatusFound, h.deepLink("mandate", "processing", paymentID.String()))
}

func (h *RedirectHandler) deepLink(flow, outcome, id string) string {
	q := url.Values{}
	q.Set("flow", flow)
	q.Set("outcome", outcome)
	if id != "" {
		q.Set("payment_id", id)
	}
	return h.deepLinkBase + "?" + q.Encode()
}
