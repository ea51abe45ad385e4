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
)

// SellHandler handles redemption order endpoints.
type SellHandler struct {
	sellSvc ports.SellService
}

// NewSellHandler creates a new SellHandler.
func NewSellHandler(sellSvc ports.SellService) *SellHandler {
	return &SellHandler{sellSvc: sellSvc}
}

// PlaceOrder handles POST /api/v1/orders/sell.
func (h *SellHandler) PlaceOrder(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.SellOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	lines := make([]ports.SellLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if (l.Units == 0) == (l.Amount == 0) {
			response.Error(c, apperror.Validation("each line needs exactly one of units or amount"))
			return
		}
		lines = append(lines, ports.SellLine{
			GoalID: l.GoalID,
			FundID: l.FundID,
			Units:  l.Units,
			Amount: l.Amount,
		})
	}

	orders, err := h.sellSvc.PlaceSellOrder(c.Request.Context(), ports.SellOrderRequest{
		UserID:   userID,
		MfaToken: c.GetHeader(middleware.HeaderMfaToken),
		Reason:   req.Reason,
		Lines:    lines,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	response.Created(c, resp)
}

// toOrderResponse converts domain.Order to DTO.
func toOrderResponse(o *domain.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        o.ID.String(),
		GoalID:    o.GoalID,
		Kind:      string(o.Kind),
		Amount:    o.Amount,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}
