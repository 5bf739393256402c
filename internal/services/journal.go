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

type JournalService interface {
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*types.JournalEntry, error)
	Create(ctx context.Context, userID uuid.UUID, title, content, mood string) (*types.JournalEntry, error)
	Get(ctx context.Context, userID, entryID uuid.UUID) (*types.JournalEntry, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
}

type journalService struct {
	db          *gorm.DB
	log         *logger.Logger
	journalRepo repos.JournalEntryRepo
}

func NewJournalService(db *gorm.DB, log *logger.Logger, journalRepo repos.JournalEntryRepo) JournalService {
	return &journalService{db: db, log: log.With("service", "JournalService"), journalRepo: journalRepo}
}

func (s *journalService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*types.JournalEntry, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}
	return s.journalRepo.GetByUserID(ctx, nil, userID, limit)
}

func (s *journalService) Create(ctx context.Context, userID uuid.UUID, title, content, mood string) (*types.JournalEntry, error) {
	content = strings.TrimSpace(content)
	if userID == uuid.Nil || content == "" {
		return nil, apperrors.ErrInvalidArgument
	}
	return s.journalRepo.Create(ctx, nil, &types.JournalEntry{
		UserID:  userID,
		Title:   strings.TrimSpace(title),
		Content: content,
		Mood:    strings.TrimSpace(mood),
	})
}

func (s *journalService) Get(ctx context.Context, userID, entryID uuid.UUID) (*types.JournalEntry, error) {
	if userID == uuid.Nil || entryID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}
	entry, err := s.journalRepo.GetByIDAndUserID(ctx, nil, entryID, userID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

func (s *journalService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	if userID == uuid.Nil || entryID == uuid.Nil {
		return apperrors.ErrInvalidArgument
	}
	existing, err := s.journalRepo.GetByIDAndUserID(ctx, nil, entryID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.ErrNotFound
	}
	return s.journalRepo.FullDeleteByIDAndUserID(ctx, nil, entryID, userID)
}
