package handler

import (
	"time"

	"fund-order-platform/internal/adapter/http/dto"
	"fund-order-platform/internal/adapter/http/middleware"
	"fund-order-platform/internal/core/domain"
	"fund-order-platform/internal/core/ports"
	"fund-order-platform/pkg/apperror"
	"fund-order-platform/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles the payment lifecycle endpoints.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// Create handles POST /api/v1/payments.
func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	orders := make([]ports.OrderSpec, 0, len(req.Orders))
	for _, o := range req.Orders {
		spec := ports.OrderSpec{
			GoalID: o.GoalID,
			Kind:   domain.OrderKind(o.Kind),
			Amount: o.Amount,
		}
		if spec.Kind == domain.OrderKindSIP {
			if o.RecurringAmount <= 0 {
				response.Error(c, apperror.Validation("recurring_amount is required for SIP orders"))
				return
			}
			start, err := time.Parse("2006-01-02", o.StartDate)
			if err != nil {
				response.Error(c, apperror.Validation("start_date must be YYYY-MM-DD"))
				return
			}
			spec.RecurringAmount = o.RecurringAmount
			spec.StartDate = start
		}
		orders = append(orders, spec)
	}

	payment, err := h.paymentSvc.CreatePaymentWithOrders(c.Request.Context(), ports.CreatePaymentRequest{
		UserID:  userID,
		ChildID: req.ChildID,
		Method:  domain.PaymentMethod(req.Method),
		Orders:  orders,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toPaymentResponse(payment))
}

// Verify handles POST /api/v1/payments/:id/verify.
func (h *PaymentHandler) Verify(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid payment id"))
		return
	}

	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	payment, err := h.paymentSvc.Verify(c.Request.Context(), paymentID, req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toPaymentResponse(payment))
}

// Initiate handles POST /api/v1/payments/:id/initiate.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid payment id"))
		return
	}

	payment, err := h.paymentSvc.Initiate(c.Request.Context(), paymentID, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toPaymentResponse(payment))
}

// authenticatedUser reads the investor ID placed by the JWT middleware.
func authenticatedUser(c *gin.Context) (int64, bool) {
	v, ok := c.Get(middleware.CtxUserID)
	if !ok {
		return 0, false
	}
	userID, ok := v.(int64)
	return userID, ok
}

// toPaymentResponse converts domain.Payment to DTO.
func toPaymentResponse(p *domain.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:                 p.ID.String(),
		ChildID:            p.ChildID,
		Method:             string(p.Method),
		VerificationStatus: string(p.VerificationStatus),
		Status:             string(p.Status),
		MandateURL:         p.MandateURL,
		PaymentURL:         p.PaymentURL,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
	}
}
