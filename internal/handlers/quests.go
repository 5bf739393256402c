package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aspira-app/aspira-backend/internal/services"
)

type QuestHandler struct {
	svc services.QuestService
}

func NewQuestHandler(svc services.QuestService) *QuestHandler {
	return &QuestHandler{svc: svc}
}

// GET /api/learn/quests?sub_module_id=<uuid>
func (h *QuestHandler) ListActive(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var subModuleID *uuid.UUID
	if raw := c.Query("sub_module_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_sub_module_id", err)
			return
		}
		subModuleID = &id
	}
	list, err := h.svc.ListActiveQuests(c.Request.Context(), userID, subModuleID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, list)
}

// GET /api/quests/progress
func (h *QuestHandler) GetProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rows, err := h.svc.GetProgress(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"progress": rows})
}

type recordProgressRequest struct {
	QuestID  uuid.UUID `json:"quest_id" binding:"required"`
	Progress int       `json:"progress"`
}

// POST /api/quests/progress
func (h *QuestHandler) RecordProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req recordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.svc.RecordProgress(c.Request.Context(), userID, req.QuestID, req.Progress); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "recorded"})
}

// GET /api/quests/stats
func (h *QuestHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	stats, err := h.svc.Stats(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}
