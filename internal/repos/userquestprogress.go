package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type UserQuestProgressRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserQuestProgress, error)
	GetByUserAndQuestID(ctx context.Context, tx *gorm.DB, userID, questID uuid.UUID) (*types.UserQuestProgress, error)
	// Upsert writes the row keyed by (user_id, quest_id). The unique index is
	// the safety net under concurrent writes for the same pair.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.UserQuestProgress) error
	CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountCompletedSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (int64, error)
}

type userQuestProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserQuestProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserQuestProgressRepo {
	return &userQuestProgressRepo{db: db, log: baseLog.With("repo", "UserQuestProgressRepo")}
}

func (r *userQuestProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserQuestProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.UserQuestProgress
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userQuestProgressRepo) GetByUserAndQuestID(ctx context.Context, tx *gorm.DB, userID, questID uuid.UUID) (*types.UserQuestProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.UserQuestProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND quest_id = ?", userID, questID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *userQuestProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UserQuestProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "quest_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"progress", "completed", "completed_at", "updated_at"}),
		}).
		Create(row).Error
}

func (r *userQuestProgressRepo) CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserQuestProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userQuestProgressRepo) CountCompletedSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserQuestProgress{}).
		Where("user_id = ? AND completed = ? AND completed_at >= ?", userID, true, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
