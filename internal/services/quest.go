package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/logger"
	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
	"github.com/aspira-app/aspira-backend/internal/repos"
	"github.com/aspira-app/aspira-backend/internal/types"
)

// dailyQuestTotal is the fixed denominator the stats endpoint reports.
const dailyQuestTotal = 9

type QuestService interface {
	// ListActiveQuests returns core templates for the sub-module when a scope
	// is given, otherwise the user's side templates plus penalty quests.
	ListActiveQuests(ctx context.Context, userID uuid.UUID, subModuleID *uuid.UUID) (*types.QuestList, error)
	// RecordProgress clamps progress to [0,100] and upserts the user's row.
	// XP is awarded exactly once, on the transition into completed.
	RecordProgress(ctx context.Context, userID, questID uuid.UUID, progress int) error
	GetProgress(ctx context.Context, userID uuid.UUID) ([]*types.UserQuestProgress, error)
	Stats(ctx context.Context, userID uuid.UUID) (*types.QuestStatsView, error)
}

// questSource is the resolved origin of a quest id: exactly one of the two
// models. Having one union here keeps a single completion entrypoint instead
// of parallel code paths.
type questSource struct {
	template *types.QuestTemplate
	legacy   *types.Quest
}

func (qs questSource) xpReward() int {
	if qs.template != nil {
		return qs.template.XPReward
	}
	if qs.legacy != nil {
		return qs.legacy.XPReward
	}
	return 0
}

type questService struct {
	db           *gorm.DB
	log          *logger.Logger
	templateRepo repos.QuestTemplateRepo
	questRepo    repos.QuestRepo
	progressRepo repos.UserQuestProgressRepo
	globalRepo   repos.UserGlobalProgressRepo
	now          func() time.Time
}

func NewQuestService(
	db *gorm.DB,
	log *logger.Logger,
	templateRepo repos.QuestTemplateRepo,
	questRepo repos.QuestRepo,
	progressRepo repos.UserQuestProgressRepo,
	globalRepo repos.UserGlobalProgressRepo,
) QuestService {
	return &questService{
		db:           db,
		log:          log.With("service", "QuestService"),
		templateRepo: templateRepo,
		questRepo:    questRepo,
		progressRepo: progressRepo,
		globalRepo:   globalRepo,
		now:          time.Now,
	}
}

func (s *questService) ListActiveQuests(ctx context.Context, userID uuid.UUID, subModuleID *uuid.UUID) (*types.QuestList, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}
	list := &types.QuestList{
		DailyQuests:   []types.QuestView{},
		PenaltyQuests: []types.QuestView{},
	}

	if subModuleID != nil {
		templates, err := s.templateRepo.GetBySubModuleID(ctx, nil, *subModuleID)
		if err != nil {
			return nil, fmt.Errorf("fetch core templates: %w", err)
		}
		for _, t := range templates {
			list.DailyQuests = append(list.DailyQuests, templateView(t))
		}
		return list, nil
	}

	side, err := s.templateRepo.GetSide(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch side templates: %w", err)
	}
	for _, t := range side {
		list.DailyQuests = append(list.DailyQuests, templateView(t))
	}

	penalties, err := s.questRepo.GetActiveByUserAndTypes(ctx, nil, userID, []string{types.QuestTypePenalty})
	if err != nil {
		return nil, fmt.Errorf("fetch penalty quests: %w", err)
	}
	for _, q := range penalties {
		list.PenaltyQuests = append(list.PenaltyQuests, legacyView(q))
	}
	return list, nil
}

func templateView(t *types.QuestTemplate) types.QuestView {
	return types.QuestView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category(),
		Type:        t.Category(),
		Difficulty:  t.Difficulty,
		XPReward:    t.XPReward,
		Mandatory:   t.Mandatory,
		Status:      types.QuestStatusActive,
	}
}

func legacyView(q *types.Quest) types.QuestView {
	return types.QuestView{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Category:    q.Type,
		Type:        q.Type,
		XPReward:    q.XPReward,
		Status:      q.Status,
		Deadline:    q.Deadline,
	}
}

func clampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

func (s *questService) RecordProgress(ctx context.Context, userID, questID uuid.UUID, progress int) error {
	if userID == uuid.Nil || questID == uuid.Nil {
		return apperrors.ErrInvalidArgument
	}
	progress = clampProgress(progress)

	source, err := s.resolveSource(ctx, questID)
	if err != nil {
		return err
	}

	var completedTransition bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gerr := s.progressRepo.GetByUserAndQuestID(ctx, tx, userID, questID)
		if gerr != nil {
			return fmt.Errorf("fetch existing progress: %w", gerr)
		}

		row := &types.UserQuestProgress{
			UserID:   userID,
			QuestID:  questID,
			Progress: progress,
		}
		if existing != nil {
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
		}
		wasCompleted := existing != nil && existing.Completed
		row.Completed = progress >= 100
		switch {
		case row.Completed && wasCompleted:
			// Already completed: keep the original timestamp, award nothing.
			row.CompletedAt = existing.CompletedAt
		case row.Completed:
			now := s.now()
			row.CompletedAt = &now
			completedTransition = true
		default:
			row.CompletedAt = nil
		}

		if uerr := s.progressRepo.Upsert(ctx, tx, row); uerr != nil {
			return fmt.Errorf("upsert progress: %w", uerr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !completedTransition {
		return nil
	}

	// Bookkeeping after the committed progress write. Failures here are
	// logged, never surfaced: the progress row takes priority.
	if reward := source.xpReward(); reward > 0 {
		if aerr := s.globalRepo.AddXP(ctx, nil, userID, reward); aerr != nil {
			s.log.Error("Failed to award XP after quest completion", "user_id", userID, "quest_id", questID, "reward", reward, "error", aerr)
		}
	}
	if source.legacy != nil {
		if serr := s.questRepo.UpdateStatus(ctx, nil, questID, types.QuestStatusCompleted); serr != nil {
			s.log.Error("Failed to update legacy quest status", "quest_id", questID, "error", serr)
		}
	}
	return nil
}

func (s *questService) resolveSource(ctx context.Context, questID uuid.UUID) (questSource, error) {
	template, err := s.templateRepo.GetByID(ctx, nil, questID)
	if err != nil {
		return questSource{}, fmt.Errorf("resolve quest template: %w", err)
	}
	if template != nil {
		return questSource{template: template}, nil
	}
	legacy, err := s.questRepo.GetByID(ctx, nil, questID)
	if err != nil {
		return questSource{}, fmt.Errorf("resolve legacy quest: %w", err)
	}
	if legacy != nil {
		return questSource{legacy: legacy}, nil
	}
	return questSource{}, apperrors.ErrNotFound
}

func (s *questService) GetProgress(ctx context.Context, userID uuid.UUID) ([]*types.UserQuestProgress, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}
	return s.progressRepo.GetByUserID(ctx, nil, userID)
}

func (s *questService) Stats(ctx context.Context, userID uuid.UUID) (*types.QuestStatsView, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := s.progressRepo.CountCompletedSince(ctx, nil, userID, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("count today's completions: %w", err)
	}
	allTime, err := s.progressRepo.CountCompleted(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("count all-time completions: %w", err)
	}
	return &types.QuestStatsView{
		TodayCompleted:   today,
		DailyTotal:       dailyQuestTotal,
		AllTimeCompleted: allTime,
	}, nil
}
