package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/logger"
	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
	"github.com/aspira-app/aspira-backend/internal/repos"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type TodoService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Todo, error)
	Create(ctx context.Context, userID uuid.UUID, title string) (*types.Todo, error)
	Update(ctx context.Context, userID, todoID uuid.UUID, title *string, done *bool) (*types.Todo, error)
	Delete(ctx context.Context, userID, todoID uuid.UUID) error
}

type todoService struct {
	db       *gorm.DB
	log      *logger.Logger
	todoRepo repos.TodoRepo
}

func NewTodoService(db *gorm.DB, log *logger.Logger, todoRepo repos.TodoRepo) TodoService {
	return &todoService{db: db, log: log.With("service", "TodoService"), todoRepo: todoRepo}
}

func (s *todoService) List(ctx context.Context, userID uuid.UUID) ([]*types.Todo, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}
	return s.todoRepo.GetByUserID(ctx, nil, userID)
}

func (s *todoService) Create(ctx context.Context, userID uuid.UUID, title string) (*types.Todo, error) {
	title = strings.TrimSpace(title)
	if userID == uuid.Nil || title == "" {
		return nil, apperrors.ErrInvalidArgument
	}
	return s.todoRepo.Create(ctx, nil, &types.Todo{UserID: userID, Title: title})
}

func (s *todoService) Update(ctx context.Context, userID, todoID uuid.UUID, title *string, done *bool) (*types.Todo, error) {
	if userID == uuid.Nil || todoID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}
	existing, err := s.todoRepo.GetByIDAndUserID(ctx, nil, todoID, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.ErrNotFound
	}
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, apperrors.ErrInvalidArgument
		}
		existing.Title = trimmed
	}
	if done != nil {
		existing.Done = *done
	}
	if err := s.todoRepo.Update(ctx, nil, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *todoService) Delete(ctx context.Context, userID, todoID uuid.UUID) error {
	if userID == uuid.Nil || todoID == uuid.Nil {
		return apperrors.ErrInvalidArgument
	}
	existing, err := s.todoRepo.GetByIDAndUserID(ctx, nil, todoID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.ErrNotFound
	}
	return s.todoRepo.FullDeleteByIDAndUserID(ctx, nil, todoID, userID)
}
