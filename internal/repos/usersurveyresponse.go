package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type UserSurveyResponseRepo interface {
	UpsertAll(ctx context.Context, tx *gorm.DB, rows []*types.UserSurveyResponse) error
	GetByUserAndFieldID(ctx context.Context, tx *gorm.DB, userID, fieldID uuid.UUID) ([]*types.UserSurveyResponse, error)
}

type userSurveyResponseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserSurveyResponseRepo(db *gorm.DB, baseLog *logger.Logger) UserSurveyResponseRepo {
	return &userSurveyResponseRepo{db: db, log: baseLog.With("repo", "UserSurveyResponseRepo")}
}

func (r *userSurveyResponseRepo) UpsertAll(ctx context.Context, tx *gorm.DB, rows []*types.UserSurveyResponse) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "field_id"}, {Name: "skill"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).
		Create(&rows).Error
}

func (r *userSurveyResponseRepo) GetByUserAndFieldID(ctx context.Context, tx *gorm.DB, userID, fieldID uuid.UUID) ([]*types.UserSurveyResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.UserSurveyResponse
	if userID == uuid.Nil || fieldID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND field_id = ?", userID, fieldID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
