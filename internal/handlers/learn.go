package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aspira-app/aspira-backend/internal/services"
)

type LearnHandler struct {
	svc services.ProgressionService
}

func NewLearnHandler(svc services.ProgressionService) *LearnHandler {
	return &LearnHandler{svc: svc}
}

// GET /api/learn/fields
func (h *LearnHandler) ListFields(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	fields, err := h.svc.ListFields(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"fields": fields})
}

// GET /api/learn/fields/:id/path
func (h *LearnHandler) GetFieldPath(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_field_id", err)
		return
	}
	path, err := h.svc.ComputeFieldPath(c.Request.Context(), userID, fieldID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, path)
}
