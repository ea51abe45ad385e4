package handler

import (
	"time"

	"fund-order-platform/internal/adapter/http/dto"
	"fund-order-platform/internal/core/domain"
	"fund-order-platform/internal/core/ports"
	"fund-order-platform/pkg/apperror"
	"fund-order-platform/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MfaHandler handles MFA challenge endpoints.
type MfaHandler struct {
	mfaSvc ports.MfaService
}

// NewMfaHandler creates a new MfaHandler.
func NewMfaHandler(mfaSvc ports.MfaService) *MfaHandler {
	return &MfaHandler{mfaSvc: mfaSvc}
}

// StartSession handles POST /api/v1/mfa/sessions.
func (h *MfaHandler) StartSession(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.StartMfaSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.mfaSvc.StartSession(c.Request.Context(), userID, req.Action,
		domain.MfaChannel(req.Channel), requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.StartMfaSessionResponse{
		SessionID:         result.SessionID.String(),
		MaskedDestination: result.MaskedDestination,
		ExpiresAt:         result.ExpiresAt.Format(time.RFC3339),
	})
}

// VerifySession handles POST /api/v1/mfa/sessions/:id/verify.
func (h *MfaHandler) VerifySession(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid session id"))
		return
	}

	var req dto.VerifyMfaSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token, err := h.mfaSvc.VerifySession(c.Request.Context(), userID, sessionID, req.Code, requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.VerifyMfaSessionResponse{Token: token})
}

// requestContext captures the audit fields of the current request.
func requestContext(c *gin.Context) ports.RequestContext {
	return ports.RequestContext{
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
