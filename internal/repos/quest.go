package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

// QuestRepo covers the legacy per-user quest table. New content uses
// QuestTemplateRepo; this stays for penalty quests and rows created before
// the template model.
type QuestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Quest) ([]*types.Quest, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Quest, error)
	GetActiveByUserAndTypes(ctx context.Context, tx *gorm.DB, userID uuid.UUID, questTypes []string) ([]*types.Quest, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
}

type questRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestRepo(db *gorm.DB, baseLog *logger.Logger) QuestRepo {
	return &questRepo{db: db, log: baseLog.With("repo", "QuestRepo")}
}

func (r *questRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Quest) ([]*types.Quest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.Quest{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *questRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Quest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Quest
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

func (r *questRepo) GetActiveByUserAndTypes(ctx context.Context, tx *gorm.DB, userID uuid.UUID, questTypes []string) ([]*types.Quest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Quest
	if userID == uuid.Nil || len(questTypes) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND status = ? AND type IN ?", userID, types.QuestStatusActive, questTypes).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *questRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Quest{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}
