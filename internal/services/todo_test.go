package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
)

func TestTodoLifecycle(t *testing.T) {
	e := newTestEnv(t)
	svc := NewTodoService(e.db, e.log, e.todoRepo)
	user := e.seedUser(t)
	ctx := context.Background()

	todo, err := svc.Create(ctx, user.ID, "  Water the plants  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if todo.Title != "Water the plants" {
		t.Fatalf("title should be trimmed, got %q", todo.Title)
	}

	done := true
	updated, err := svc.Update(ctx, user.ID, todo.ID, nil, &done)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Done {
		t.Fatalf("todo should be done")
	}
	if updated.Title != "Water the plants" {
		t.Fatalf("nil title must leave the title untouched, got %q", updated.Title)
	}

	todos, err := svc.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("want 1 todo, got %d", len(todos))
	}

	if err := svc.Delete(ctx, user.ID, todo.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	todos, err = svc.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("todo should be gone")
	}
}

func TestTodoOwnership(t *testing.T) {
	e := newTestEnv(t)
	svc := NewTodoService(e.db, e.log, e.todoRepo)
	owner := e.seedUser(t)
	stranger := e.seedUser(t)
	ctx := context.Background()

	todo, err := svc.Create(ctx, owner.ID, "Private task")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, stranger.ID, todo.ID, nil, nil); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("update across users: want ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, stranger.ID, todo.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("delete across users: want ErrNotFound, got %v", err)
	}
}

func TestTodoValidation(t *testing.T) {
	e := newTestEnv(t)
	svc := NewTodoService(e.db, e.log, e.todoRepo)
	user := e.seedUser(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, user.ID, "   "); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("blank title: want ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Create(ctx, uuid.Nil, "x"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("nil user: want ErrInvalidArgument, got %v", err)
	}

	todo, err := svc.Create(ctx, user.ID, "Valid")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	blank := "   "
	if _, err := svc.Update(ctx, user.ID, todo.ID, &blank, nil); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("blank title update: want ErrInvalidArgument, got %v", err)
	}
}
