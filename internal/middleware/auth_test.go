package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/requestdata"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type fakeAuthService struct {
	validToken string
	userID     uuid.UUID
}

func (f *fakeAuthService) RegisterUser(ctx context.Context, user *types.User) error { return nil }
func (f *fakeAuthService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	return "", "", nil
}
func (f *fakeAuthService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	return "", "", nil
}
func (f *fakeAuthService) LogoutUser(ctx context.Context) error { return nil }
func (f *fakeAuthService) GetAccessTTL() time.Duration          { return time.Hour }

func (f *fakeAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString != f.validToken {
		return ctx, apperrors.ErrUnauthorized
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      f.userID,
	}), nil
}

func newTestRouter(t *testing.T, svc *fakeAuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	am := NewAuthMiddleware(log, svc)
	router := gin.New()
	router.GET("/protected", am.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": requestdata.UserID(c.Request.Context())})
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	svc := &fakeAuthService{validToken: "good-token", userID: uuid.New()}
	router := newTestRouter(t, svc)

	cases := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
	}{
		{name: "no token", path: "/protected", wantStatus: http.StatusUnauthorized},
		{name: "bad bearer token", path: "/protected", authHeader: "Bearer wrong", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", path: "/protected", authHeader: "good-token", wantStatus: http.StatusUnauthorized},
		{name: "valid bearer token", path: "/protected", authHeader: "Bearer good-token", wantStatus: http.StatusOK},
		{name: "valid query token", path: "/protected?token=good-token", wantStatus: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Fatalf("status: want=%d got=%d body=%s", tc.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRequireAuthRejectsTokenWithoutIdentity(t *testing.T) {
	svc := &fakeAuthService{validToken: "good-token", userID: uuid.Nil}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status: want=%d got=%d", http.StatusForbidden, w.Code)
	}
}
