package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type FieldRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Field) ([]*types.Field, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Field, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Field, error)
}

type fieldRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFieldRepo(db *gorm.DB, baseLog *logger.Logger) FieldRepo {
	return &fieldRepo{db: db, log: baseLog.With("repo", "FieldRepo")}
}

func (r *fieldRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Field) ([]*types.Field, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.Field{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *fieldRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Field, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Field
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *fieldRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Field, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Field
	if err := transaction.WithContext(ctx).
		Order("unlock_threshold ASC, name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
