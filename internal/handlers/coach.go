package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aspira-app/aspira-backend/internal/services"
)

type CoachHandler struct {
	svc services.CoachService
}

func NewCoachHandler(svc services.CoachService) *CoachHandler {
	return &CoachHandler{svc: svc}
}

type coachRequest struct {
	EntryID  *uuid.UUID             `json:"entry_id"`
	Messages []services.ChatMessage `json:"messages" binding:"required,min=1"`
}

// POST /api/ai/coach
func (h *CoachHandler) Respond(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req coachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	reply, err := h.svc.Respond(c.Request.Context(), userID, req.EntryID, req.Messages)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": reply})
}
