package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aspira-app/aspira-backend/internal/services"
)

type JournalHandler struct {
	svc services.JournalService
}

func NewJournalHandler(svc services.JournalService) *JournalHandler {
	return &JournalHandler{svc: svc}
}

// GET /api/journal?limit=<n>
func (h *JournalHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = parsed
	}
	entries, err := h.svc.List(c.Request.Context(), userID, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"entries": entries})
}

type createJournalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
	Mood    string `json:"mood"`
}

// POST /api/journal
func (h *JournalHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req createJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	entry, err := h.svc.Create(c.Request.Context(), userID, req.Title, req.Content, req.Mood)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /api/journal/:id
func (h *JournalHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_entry_id", err)
		return
	}
	entry, err := h.svc.Get(c.Request.Context(), userID, entryID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, entry)
}

// DELETE /api/journal/:id
func (h *JournalHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_entry_id", err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, entryID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}
