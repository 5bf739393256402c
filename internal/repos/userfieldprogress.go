package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type UserFieldProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.UserFieldProgress) ([]*types.UserFieldProgress, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserFieldProgress, error)
	GetByUserAndFieldID(ctx context.Context, tx *gorm.DB, userID, fieldID uuid.UUID) (*types.UserFieldProgress, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.UserFieldProgress) error
	// AddXP issues a store-side increment; never read-modify-write.
	AddXP(ctx context.Context, tx *gorm.DB, userID, fieldID uuid.UUID, delta int) error
}

type userFieldProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserFieldProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserFieldProgressRepo {
	return &userFieldProgressRepo{db: db, log: baseLog.With("repo", "UserFieldProgressRepo")}
}

func (r *userFieldProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserFieldProgress) ([]*types.UserFieldProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.UserFieldProgress{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userFieldProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserFieldProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.UserFieldProgress
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

func (r *userFieldProgressRepo) GetByUserAndFieldID(ctx context.Context, tx *gorm.DB, userID, fieldID uuid.UUID) (*types.UserFieldProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.UserFieldProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND field_id = ?", userID, fieldID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *userFieldProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UserFieldProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "field_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"level", "xp", "unlocked", "updated_at"}),
		}).
		Create(row).Error
}

func (r *userFieldProgressRepo) AddXP(ctx context.Context, tx *gorm.DB, userID, fieldID uuid.UUID, delta int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.UserFieldProgress{}).
		Where("user_id = ? AND field_id = ?", userID, fieldID).
		UpdateColumn("xp", gorm.Expr("xp + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
