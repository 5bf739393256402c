package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aspira-app/aspira-backend/internal/services"
)

type OnboardingHandler struct {
	svc services.OnboardingService
}

func NewOnboardingHandler(svc services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{svc: svc}
}

type completeOnboardingRequest struct {
	FieldID uuid.UUID             `json:"field_id" binding:"required"`
	Scores  []services.SkillScore `json:"scores"`
}

// POST /api/onboarding/complete
func (h *OnboardingHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req completeOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	progress, err := h.svc.Complete(c.Request.Context(), userID, req.FieldID, req.Scores)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"field_progress": progress})
}
