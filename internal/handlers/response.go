package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aspira-app/aspira-backend/internal/apierr"
	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps service sentinels onto HTTP statuses. Unclassified
// errors become a 500 with the message suppressed.
func RespondServiceError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	switch {
	case errors.As(err, &apiErr):
		RespondError(c, apiErr.Status, apiErr.Code, apiErr)
	case errors.Is(err, apperrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, apperrors.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("unauthorized"))
	default:
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
	}
}
