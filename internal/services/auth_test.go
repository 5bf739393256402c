package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
	"github.com/aspira-app/aspira-backend/internal/requestdata"
	"github.com/aspira-app/aspira-backend/internal/types"
)

func newAuthService(e *testEnv) AuthService {
	return NewAuthService(
		e.db, e.log,
		e.userRepo, e.userTokenRepo,
		nil,
		"test-secret", time.Hour, 24*time.Hour,
	)
}

func registerTestUser(t *testing.T, svc AuthService, email string) *types.User {
	t.Helper()
	user := &types.User{
		Email:     email,
		Password:  "hunter2secret",
		FirstName: "Grace",
		LastName:  "Hopper",
	}
	if err := svc.RegisterUser(context.Background(), user); err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestRegisterUser(t *testing.T) {
	e := newTestEnv(t)
	svc := newAuthService(e)

	user := registerTestUser(t, svc, "Grace@Example.com")
	if user.Email != "grace@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if user.Password == "hunter2secret" {
		t.Fatalf("password must be hashed before storage")
	}

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := &types.User{
			Email:     "grace@example.com",
			Password:  "otherpassword",
			FirstName: "Grace",
			LastName:  "Hopper",
		}
		err := svc.RegisterUser(context.Background(), dup)
		if !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Fatalf("want ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		err := svc.RegisterUser(context.Background(), &types.User{Email: "x@example.com"})
		if !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Fatalf("want ErrInvalidArgument, got %v", err)
		}
	})
}

func TestLoginAndTokenRoundTrip(t *testing.T) {
	e := newTestEnv(t)
	svc := newAuthService(e)
	user := registerTestUser(t, svc, "ada@example.com")

	access, refresh, err := svc.LoginUser(context.Background(), "ada@example.com", "hunter2secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("login must return both tokens")
	}

	ctx, err := svc.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if got := requestdata.UserID(ctx); got != user.ID {
		t.Fatalf("token subject: want=%s got=%s", user.ID, got)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	e := newTestEnv(t)
	svc := newAuthService(e)
	registerTestUser(t, svc, "ada@example.com")

	_, _, err := svc.LoginUser(context.Background(), "ada@example.com", "wrong")
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	e := newTestEnv(t)
	svc := newAuthService(e)
	registerTestUser(t, svc, "ada@example.com")
	_, refresh, err := svc.LoginUser(context.Background(), "ada@example.com", "hunter2secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	access2, refresh2, err := svc.RefreshUser(context.Background(), refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if access2 == "" || refresh2 == "" || refresh2 == refresh {
		t.Fatalf("refresh must rotate the token")
	}

	// The spent token no longer works.
	_, _, err = svc.RefreshUser(context.Background(), refresh)
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("spent refresh token: want ErrUnauthorized, got %v", err)
	}
}

func TestLogoutDeletesTokens(t *testing.T) {
	e := newTestEnv(t)
	svc := newAuthService(e)
	user := registerTestUser(t, svc, "ada@example.com")
	_, refresh, err := svc.LoginUser(context.Background(), "ada@example.com", "hunter2secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: user.ID})
	if err := svc.LogoutUser(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	_, _, err = svc.RefreshUser(context.Background(), refresh)
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("tokens should be gone after logout, got %v", err)
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	e := newTestEnv(t)
	svc := newAuthService(e)

	for _, token := range []string{"", "not-a-jwt", uuid.NewString()} {
		if _, err := svc.SetContextFromToken(context.Background(), token); !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Fatalf("token %q: want ErrUnauthorized, got %v", token, err)
		}
	}
}
