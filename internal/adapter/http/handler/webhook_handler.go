package handler

import (
	"strings"

	"fund-order-platform/internal/adapter/http/dto"
	"fund-order-platform/internal/core/ports"
	"fund-order-platform/pkg/apperror"
	"fund-order-platform/pkg/response"

	"github.com/gin-gonic/gin"
)

// WebhookHandler handles inbound provider callbacks.
type WebhookHandler struct {
	verificationSvc ports.VerificationService
	paymentSvc      ports.PaymentService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(verificationSvc ports.VerificationService, paymentSvc ports.PaymentService) *WebhookHandler {
	return &WebhookHandler{verificationSvc: verificationSvc, paymentSvc: paymentSvc}
}

// BankVerification handles POST /webhooks/bank-verification, the reverse
// penny drop confirmation. Processing is idempotent; duplicates return 200.
func (h *WebhookHandler) BankVerification(c *gin.Context) {
	var req dto.BankVerificationWebhook
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	err := h.verificationSvc.HandleBankVerification(c.Request.Context(), ports.BankVerificationEvent{
		ReferenceID:     req.ReferenceID,
		TransactionID:   req.TransactionID,
		TrxStatus:       req.TrxStatus,
		Amount:          req.Amount,
		RemitterAccount: req.RemitterAccount,
		RemitterIFSC:    req.RemitterIFSC,
		UTR:             req.UTR,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"processed": true})
}

// PaymentCallback handles POST /webhooks/payments, the provider settlement
// callback. Terminal statuses fan out to the owned orders; re-delivery of a
// terminal callback is a no-op.
func (h *WebhookHandler) PaymentCallback(c *gin.Context) {
	var req dto.PaymentCallbackWebhook
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var err error
	switch strings.ToUpper(req.Status) {
	case "SUCCESS", "COMPLETED":
		err = h.paymentSvc.MarkSuccess(c.Request.Context(), req.PaymentRef)
	case "FAILED", "REJECTED", "EXPIRED":
		err = h.paymentSvc.MarkFailure(c.Request.Context(), req.PaymentRef)
	default:
		response.Error(c, apperror.Validation("unknown payment status: "+req.Status))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"processed": true})
}
