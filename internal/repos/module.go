package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type ModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Module) ([]*types.Module, error)
	// GetByFieldIDOrdered returns the field's modules ordered by unlock
	// threshold ascending; the threshold doubles as the display sequence.
	GetByFieldIDOrdered(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) ([]*types.Module, error)
}

type moduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	return &moduleRepo{db: db, log: baseLog.With("repo", "ModuleRepo")}
}

func (r *moduleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Module) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.Module{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *moduleRepo) GetByFieldIDOrdered(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Module
	if fieldID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("unlock_threshold ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type SubModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.SubModule) ([]*types.SubModule, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SubModule, error)
	// GetByModuleIDsOrdered returns sub-modules for the given modules ordered
	// by order index ascending.
	GetByModuleIDsOrdered(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.SubModule, error)
}

type subModuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubModuleRepo(db *gorm.DB, baseLog *logger.Logger) SubModuleRepo {
	return &subModuleRepo{db: db, log: baseLog.With("repo", "SubModuleRepo")}
}

func (r *subModuleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SubModule) ([]*types.SubModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.SubModule{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *subModuleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SubModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.SubModule
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

func (r *subModuleRepo) GetByModuleIDsOrdered(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.SubModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SubModule
	if len(moduleIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("module_id IN ?", moduleIDs).
		Order("order_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
