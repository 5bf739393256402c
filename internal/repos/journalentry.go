package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type JournalEntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.JournalEntry) (*types.JournalEntry, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.JournalEntry, error)
	GetByIDAndUserID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.JournalEntry, error)
	FullDeleteByIDAndUserID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) error
}

type journalEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJournalEntryRepo(db *gorm.DB, baseLog *logger.Logger) JournalEntryRepo {
	return &journalEntryRepo{db: db, log: baseLog.With("repo", "JournalEntryRepo")}
}

func (r *journalEntryRepo) Create(ctx context.Context, tx *gorm.DB, row *types.JournalEntry) (*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *journalEntryRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.JournalEntry
	if userID == uuid.Nil {
		return results, nil
	}
	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *journalEntryRepo) GetByIDAndUserID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.JournalEntry
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *journalEntryRepo) FullDeleteByIDAndUserID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.JournalEntry{}).Error
}
