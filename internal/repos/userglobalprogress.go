package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type UserGlobalProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.UserGlobalProgress) ([]*types.UserGlobalProgress, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserGlobalProgress, error)
	// AddXP issues a store-side atomic increment so concurrent completions
	// never lose updates.
	AddXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) error
	CountInLeagueWithMoreXP(ctx context.Context, tx *gorm.DB, league string, xp int) (int64, error)
	GetLeagueTop(ctx context.Context, tx *gorm.DB, league string, limit int) ([]*types.UserGlobalProgress, error)
	CountInLeague(ctx context.Context, tx *gorm.DB, league string) (int64, error)
}

type userGlobalProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserGlobalProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserGlobalProgressRepo {
	return &userGlobalProgressRepo{db: db, log: baseLog.With("repo", "UserGlobalProgressRepo")}
}

func (r *userGlobalProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserGlobalProgress) ([]*types.UserGlobalProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.UserGlobalProgress{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userGlobalProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserGlobalProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.UserGlobalProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *userGlobalProgressRepo) AddXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.UserGlobalProgress{}).
		Where("user_id = ?", userID).
		UpdateColumn("global_xp", gorm.Expr("global_xp + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userGlobalProgressRepo) CountInLeagueWithMoreXP(ctx context.Context, tx *gorm.DB, league string, xp int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserGlobalProgress{}).
		Where("league = ? AND global_xp > ?", league, xp).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userGlobalProgressRepo) GetLeagueTop(ctx context.Context, tx *gorm.DB, league string, limit int) ([]*types.UserGlobalProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.UserGlobalProgress
	if limit <= 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("league = ?", league).
		Order("global_xp DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userGlobalProgressRepo) CountInLeague(ctx context.Context, tx *gorm.DB, league string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserGlobalProgress{}).
		Where("league = ?", league).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
