package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type QuestTemplateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.QuestTemplate) ([]*types.QuestTemplate, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.QuestTemplate, error)
	GetBySubModuleID(ctx context.Context, tx *gorm.DB, subModuleID uuid.UUID) ([]*types.QuestTemplate, error)
	// GetCoreByFieldID returns every template scoped to any sub-module under
	// the field, mandatory or not.
	GetCoreByFieldID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) ([]*types.QuestTemplate, error)
	// GetSide returns standalone templates (no sub-module scope).
	GetSide(ctx context.Context, tx *gorm.DB) ([]*types.QuestTemplate, error)
}

type questTemplateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestTemplateRepo(db *gorm.DB, baseLog *logger.Logger) QuestTemplateRepo {
	return &questTemplateRepo{db: db, log: baseLog.With("repo", "QuestTemplateRepo")}
}

func (r *questTemplateRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.QuestTemplate) ([]*types.QuestTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.QuestTemplate{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *questTemplateRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.QuestTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.QuestTemplate
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

func (r *questTemplateRepo) GetBySubModuleID(ctx context.Context, tx *gorm.DB, subModuleID uuid.UUID) ([]*types.QuestTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.QuestTemplate
	if subModuleID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("sub_module_id = ?", subModuleID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *questTemplateRepo) GetCoreByFieldID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) ([]*types.QuestTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.QuestTemplate
	if fieldID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Joins("JOIN sub_module ON sub_module.id = module_quest_template.sub_module_id").
		Joins("JOIN module ON module.id = sub_module.module_id").
		Where("module.field_id = ?", fieldID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *questTemplateRepo) GetSide(ctx context.Context, tx *gorm.DB) ([]*types.QuestTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.QuestTemplate
	if err := transaction.WithContext(ctx).
		Where("sub_module_id IS NULL").
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
