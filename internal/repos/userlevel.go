package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type UserLevelRepo interface {
	// GetByLevel returns nil when no row exists for the level, which the
	// progression engine treats as the level ceiling.
	GetByLevel(ctx context.Context, tx *gorm.DB, level int) (*types.UserLevel, error)
	UpsertAll(ctx context.Context, tx *gorm.DB, rows []*types.UserLevel) error
}

type userLevelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserLevelRepo(db *gorm.DB, baseLog *logger.Logger) UserLevelRepo {
	return &userLevelRepo{db: db, log: baseLog.With("repo", "UserLevelRepo")}
}

func (r *userLevelRepo) GetByLevel(ctx context.Context, tx *gorm.DB, level int) (*types.UserLevel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.UserLevel
	err := transaction.WithContext(ctx).
		Where("level = ?", level).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *userLevelRepo) UpsertAll(ctx context.Context, tx *gorm.DB, rows []*types.UserLevel) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "level"}},
			DoUpdates: clause.AssignmentColumns([]string{"xp_threshold", "updated_at"}),
		}).
		Create(&rows).Error
}
