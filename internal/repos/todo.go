package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type TodoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Todo) (*types.Todo, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Todo, error)
	GetByIDAndUserID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Todo, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Todo) error
	FullDeleteByIDAndUserID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) error
}

type todoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTodoRepo(db *gorm.DB, baseLog *logger.Logger) TodoRepo {
	return &todoRepo{db: db, log: baseLog.With("repo", "TodoRepo")}
}

func (r *todoRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Todo) (*types.Todo, error) {
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

func (r *todoRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Todo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Todo
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *todoRepo) GetByIDAndUserID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.Todo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Todo
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

func (r *todoRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Todo) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *todoRepo) FullDeleteByIDAndUserID(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.Todo{}).Error
}
