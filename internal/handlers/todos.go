package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aspira-app/aspira-backend/internal/services"
)

type TodoHandler struct {
	svc services.TodoService
}

func NewTodoHandler(svc services.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// GET /api/todos
func (h *TodoHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	todos, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"todos": todos})
}

type createTodoRequest struct {
	Title string `json:"title" binding:"required"`
}

// POST /api/todos
func (h *TodoHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	todo, err := h.svc.Create(c.Request.Context(), userID, req.Title)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

type updateTodoRequest struct {
	Title *string `json:"title"`
	Done  *bool   `json:"done"`
}

// PATCH /api/todos/:id
func (h *TodoHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_todo_id", err)
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	todo, err := h.svc.Update(c.Request.Context(), userID, todoID, req.Title, req.Done)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, todo)
}

// DELETE /api/todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_todo_id", err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, todoID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}
