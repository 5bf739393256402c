package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aspira-app/aspira-backend/internal/requestdata"
	"github.com/aspira-app/aspira-backend/internal/services"
)

// currentUserID pulls the authenticated identity off the request context.
// The auth middleware guarantees it for protected routes; the nil check
// covers misconfigured route groups.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no authenticated user"))
		return uuid.Nil, false
	}
	return userID, true
}

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// GET /api/user
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, err := h.svc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, profile)
}
