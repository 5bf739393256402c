package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/aspira-app/aspira-backend/internal/apierr"
	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantInBody string
	}{
		{name: "not found", err: apperrors.ErrNotFound, wantStatus: http.StatusNotFound, wantInBody: "not_found"},
		{name: "wrapped not found", err: errors.New("fetch field: " + apperrors.ErrNotFound.Error()), wantStatus: http.StatusInternalServerError, wantInBody: "internal"},
		{name: "invalid argument", err: apperrors.ErrInvalidArgument, wantStatus: http.StatusBadRequest, wantInBody: "invalid_argument"},
		{name: "unauthorized", err: apperrors.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantInBody: "unauthorized"},
		{name: "status-coded error", err: apierr.New(http.StatusConflict, "conflict", errors.New("duplicate")), wantStatus: http.StatusConflict, wantInBody: "conflict"},
		{name: "unclassified", err: errors.New("pg: connection refused"), wantStatus: http.StatusInternalServerError, wantInBody: "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			RespondServiceError(c, tc.err)
			if w.Code != tc.wantStatus {
				t.Fatalf("status: want=%d got=%d", tc.wantStatus, w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.wantInBody) {
				t.Fatalf("body %q should contain %q", w.Body.String(), tc.wantInBody)
			}
		})
	}
}

func TestRespondServiceErrorHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondServiceError(c, errors.New("password=swordfish leaked into an error"))
	if strings.Contains(w.Body.String(), "swordfish") {
		t.Fatalf("internal error detail must not reach the client: %s", w.Body.String())
	}
}
