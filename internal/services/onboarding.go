package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/gamedata"
	"github.com/aspira-app/aspira-backend/internal/logger"
	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
	"github.com/aspira-app/aspira-backend/internal/repos"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type SkillScore struct {
	Skill string `json:"skill" binding:"required"`
	Score int    `json:"score"`
}

type OnboardingService interface {
	// Complete writes the survey, seeds per-field progress rows, and unlocks
	// the chosen field at the surveyed level. Other fields start locked at
	// level 1 with no XP.
	Complete(ctx context.Context, userID, fieldID uuid.UUID, scores []SkillScore) (*types.UserFieldProgress, error)
	// SeedLevels installs the static level table. Called once at startup.
	SeedLevels(ctx context.Context, data gamedata.GameData) error
}

type onboardingService struct {
	db            *gorm.DB
	log           *logger.Logger
	fieldRepo     repos.FieldRepo
	fieldProgRepo repos.UserFieldProgressRepo
	globalRepo    repos.UserGlobalProgressRepo
	surveyRepo    repos.UserSurveyResponseRepo
	userLevelRepo repos.UserLevelRepo
}

func NewOnboardingService(
	db *gorm.DB,
	log *logger.Logger,
	fieldRepo repos.FieldRepo,
	fieldProgRepo repos.UserFieldProgressRepo,
	globalRepo repos.UserGlobalProgressRepo,
	surveyRepo repos.UserSurveyResponseRepo,
	userLevelRepo repos.UserLevelRepo,
) OnboardingService {
	return &onboardingService{
		db:            db,
		log:           log.With("service", "OnboardingService"),
		fieldRepo:     fieldRepo,
		fieldProgRepo: fieldProgRepo,
		globalRepo:    globalRepo,
		surveyRepo:    surveyRepo,
		userLevelRepo: userLevelRepo,
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ScoreToLevel maps a self-reported survey to an initial level 1..5.
// Scores are clamped to [0,100] before averaging; an empty survey is level 1.
func ScoreToLevel(scores []SkillScore) int {
	if len(scores) == 0 {
		return 1
	}
	sum := 0
	for _, s := range scores {
		sum += clampScore(s.Score)
	}
	avg := float64(sum) / float64(len(scores))
	switch {
	case avg <= 20:
		return 1
	case avg <= 40:
		return 2
	case avg <= 60:
		return 3
	case avg <= 80:
		return 4
	default:
		return 5
	}
}

func (s *onboardingService) Complete(ctx context.Context, userID, fieldID uuid.UUID, scores []SkillScore) (*types.UserFieldProgress, error) {
	if userID == uuid.Nil || fieldID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}

	chosen, err := s.fieldRepo.GetByID(ctx, nil, fieldID)
	if err != nil {
		return nil, fmt.Errorf("fetch chosen field: %w", err)
	}
	if chosen == nil {
		return nil, apperrors.ErrNotFound
	}
	fields, err := s.fieldRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch fields: %w", err)
	}

	level := ScoreToLevel(scores)
	var chosenProgress *types.UserFieldProgress

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		surveyRows := make([]*types.UserSurveyResponse, 0, len(scores))
		for _, sc := range scores {
			surveyRows = append(surveyRows, &types.UserSurveyResponse{
				UserID:  userID,
				FieldID: fieldID,
				Skill:   sc.Skill,
				Score:   clampScore(sc.Score),
			})
		}
		if uerr := s.surveyRepo.UpsertAll(ctx, tx, surveyRows); uerr != nil {
			return fmt.Errorf("write survey: %w", uerr)
		}

		global, gerr := s.globalRepo.GetByUserID(ctx, tx, userID)
		if gerr != nil {
			return fmt.Errorf("fetch global progress: %w", gerr)
		}
		if global == nil {
			if _, cerr := s.globalRepo.Create(ctx, tx, []*types.UserGlobalProgress{{
				UserID:      userID,
				GlobalLevel: 1,
				GlobalXP:    0,
				League:      types.LeagueBronze,
			}}); cerr != nil {
				return fmt.Errorf("create global progress: %w", cerr)
			}
		}

		for _, f := range fields {
			existing, ferr := s.fieldProgRepo.GetByUserAndFieldID(ctx, tx, userID, f.ID)
			if ferr != nil {
				return fmt.Errorf("fetch field progress: %w", ferr)
			}
			switch {
			case f.ID == fieldID:
				row := &types.UserFieldProgress{
					UserID:   userID,
					FieldID:  f.ID,
					Level:    level,
					XP:       0,
					Unlocked: true,
				}
				if existing != nil {
					row.ID = existing.ID
					row.XP = existing.XP
				}
				if uerr := s.fieldProgRepo.Upsert(ctx, tx, row); uerr != nil {
					return fmt.Errorf("unlock chosen field: %w", uerr)
				}
				chosenProgress = row
			case existing == nil:
				if _, cerr := s.fieldProgRepo.Create(ctx, tx, []*types.UserFieldProgress{{
					UserID:   userID,
					FieldID:  f.ID,
					Level:    1,
					XP:       0,
					Unlocked: false,
				}}); cerr != nil {
					return fmt.Errorf("seed locked field: %w", cerr)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chosenProgress, nil
}

func (s *onboardingService) SeedLevels(ctx context.Context, data gamedata.GameData) error {
	rows := make([]*types.UserLevel, 0, len(data.Levels))
	for _, lt := range data.Levels {
		rows = append(rows, &types.UserLevel{Level: lt.Level, XPThreshold: lt.XPThreshold})
	}
	if err := s.userLevelRepo.UpsertAll(ctx, nil, rows); err != nil {
		return fmt.Errorf("seed level table: %w", err)
	}
	s.log.Info("Seeded level thresholds", "levels", len(rows))
	return nil
}
