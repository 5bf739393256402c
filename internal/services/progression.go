package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/logger"
	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
	"github.com/aspira-app/aspira-backend/internal/repos"
	"github.com/aspira-app/aspira-backend/internal/types"
)

// fetchBudget bounds the store round-trips for a single path computation.
const fetchBudget = 10 * time.Second

type FieldSummary struct {
	Field    *types.Field             `json:"field"`
	Progress *types.UserFieldProgress `json:"progress,omitempty"`
}

type ProgressionService interface {
	// ComputeFieldPath builds the unlock/completion view for one field.
	// Returns pkg/errors.ErrNotFound when the field does not exist; callers
	// route away instead of rendering a partial path.
	ComputeFieldPath(ctx context.Context, userID, fieldID uuid.UUID) (*types.FieldPath, error)
	ListFields(ctx context.Context, userID uuid.UUID) ([]*FieldSummary, error)
}

type progressionService struct {
	db            *gorm.DB
	log           *logger.Logger
	fieldRepo     repos.FieldRepo
	moduleRepo    repos.ModuleRepo
	subModuleRepo repos.SubModuleRepo
	templateRepo  repos.QuestTemplateRepo
	fieldProgRepo repos.UserFieldProgressRepo
	questProgRepo repos.UserQuestProgressRepo
	userLevelRepo repos.UserLevelRepo
}

func NewProgressionService(
	db *gorm.DB,
	log *logger.Logger,
	fieldRepo repos.FieldRepo,
	moduleRepo repos.ModuleRepo,
	subModuleRepo repos.SubModuleRepo,
	templateRepo repos.QuestTemplateRepo,
	fieldProgRepo repos.UserFieldProgressRepo,
	questProgRepo repos.UserQuestProgressRepo,
	userLevelRepo repos.UserLevelRepo,
) ProgressionService {
	return &progressionService{
		db:            db,
		log:           log.With("service", "ProgressionService"),
		fieldRepo:     fieldRepo,
		moduleRepo:    moduleRepo,
		subModuleRepo: subModuleRepo,
		templateRepo:  templateRepo,
		fieldProgRepo: fieldProgRepo,
		questProgRepo: questProgRepo,
		userLevelRepo: userLevelRepo,
	}
}

func (s *progressionService) ComputeFieldPath(ctx context.Context, userID, fieldID uuid.UUID) (*types.FieldPath, error) {
	if userID == uuid.Nil || fieldID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}

	ctx, cancel := context.WithTimeout(ctx, fetchBudget)
	defer cancel()

	field, err := s.fieldRepo.GetByID(ctx, nil, fieldID)
	if err != nil {
		return nil, fmt.Errorf("fetch field: %w", err)
	}
	if field == nil {
		return nil, apperrors.ErrNotFound
	}

	// The remaining reads are independent and read-only.
	var (
		fieldProg *types.UserFieldProgress
		modules   []*types.Module
		templates []*types.QuestTemplate
		questProg []*types.UserQuestProgress
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var gerr error
		fieldProg, gerr = s.fieldProgRepo.GetByUserAndFieldID(gctx, nil, userID, fieldID)
		return gerr
	})
	g.Go(func() error {
		var gerr error
		modules, gerr = s.moduleRepo.GetByFieldIDOrdered(gctx, nil, fieldID)
		return gerr
	})
	g.Go(func() error {
		var gerr error
		templates, gerr = s.templateRepo.GetCoreByFieldID(gctx, nil, fieldID)
		return gerr
	})
	g.Go(func() error {
		var gerr error
		questProg, gerr = s.questProgRepo.GetByUserID(gctx, nil, userID)
		return gerr
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch path rows: %w", err)
	}

	// A user who has not unlocked the field still sees level 1 progress.
	level, xp, unlocked := 1, 0, false
	if fieldProg != nil {
		level, xp, unlocked = fieldProg.Level, fieldProg.XP, fieldProg.Unlocked
	}

	nextLevel, err := s.userLevelRepo.GetByLevel(ctx, nil, level+1)
	if err != nil {
		return nil, fmt.Errorf("fetch level threshold: %w", err)
	}

	moduleIDs := make([]uuid.UUID, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}
	subModules, err := s.subModuleRepo.GetByModuleIDsOrdered(ctx, nil, moduleIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch sub-modules: %w", err)
	}

	path := assembleFieldPath(field, level, xp, unlocked, nextLevel, modules, subModules, templates, questProg)
	return path, nil
}

// assembleFieldPath is the pure aggregation step; everything it needs has
// already been fetched.
func assembleFieldPath(
	field *types.Field,
	level, xp int,
	unlocked bool,
	nextLevel *types.UserLevel,
	modules []*types.Module,
	subModules []*types.SubModule,
	templates []*types.QuestTemplate,
	questProg []*types.UserQuestProgress,
) *types.FieldPath {
	completed := make(map[uuid.UUID]bool, len(questProg))
	for _, p := range questProg {
		if p.Completed {
			completed[p.QuestID] = true
		}
	}

	type subModuleCounts struct {
		mandatoryTotal     int
		mandatoryCompleted int
		coreTotal          int
		coreCompleted      int
	}
	counts := make(map[uuid.UUID]*subModuleCounts)
	for _, t := range templates {
		if t.SubModuleID == nil {
			continue
		}
		c := counts[*t.SubModuleID]
		if c == nil {
			c = &subModuleCounts{}
			counts[*t.SubModuleID] = c
		}
		c.coreTotal++
		if completed[t.ID] {
			c.coreCompleted++
		}
		if t.Mandatory {
			c.mandatoryTotal++
			if completed[t.ID] {
				c.mandatoryCompleted++
			}
		}
	}

	subsByModule := make(map[uuid.UUID][]*types.SubModule, len(modules))
	for _, sm := range subModules {
		subsByModule[sm.ModuleID] = append(subsByModule[sm.ModuleID], sm)
	}

	moduleViews := make([]types.ModuleView, 0, len(modules))
	for _, m := range modules {
		mv := types.ModuleView{
			ID:              m.ID,
			Title:           m.Title,
			Description:     m.Description,
			UnlockThreshold: m.UnlockThreshold,
			SubModules:      []types.SubModuleView{},
		}
		for _, sm := range subsByModule[m.ID] {
			c := counts[sm.ID]
			if c == nil {
				c = &subModuleCounts{}
			}
			sv := types.SubModuleView{
				ID:              sm.ID,
				Title:           sm.Title,
				Description:     sm.Description,
				OrderIndex:      sm.OrderIndex,
				UnlockThreshold: sm.UnlockThreshold,
				// The gate is level-based only; earlier sub-modules do not
				// have to be completed first.
				IsUnlocked:  level >= sm.UnlockThreshold,
				IsCompleted: c.mandatoryTotal > 0 && c.mandatoryCompleted >= c.mandatoryTotal,
				QuestStats:  types.QuestStats{Completed: c.coreCompleted, Total: c.coreTotal},
			}
			mv.QuestStats.Completed += c.coreCompleted
			mv.QuestStats.Total += c.coreTotal
			mv.SubModules = append(mv.SubModules, sv)
		}
		moduleViews = append(moduleViews, mv)
	}

	return &types.FieldPath{
		FieldID:       field.ID,
		FieldName:     field.Name,
		Unlocked:      unlocked,
		LevelProgress: levelProgress(level, xp, nextLevel),
		Modules:       moduleViews,
	}
}

// levelProgress resolves the progress-bar target. A missing threshold row for
// level+1 means the user sits at the top of the level table; that is surfaced
// as MaxLevelReached instead of a silent fallback target.
func levelProgress(level, xp int, nextLevel *types.UserLevel) types.LevelProgress {
	lp := types.LevelProgress{Level: level, XP: xp}
	if nextLevel == nil {
		lp.MaxLevelReached = true
		lp.NextLevelXP = xp
		return lp
	}
	lp.NextLevelXP = nextLevel.XPThreshold
	return lp
}

func (s *progressionService) ListFields(ctx context.Context, userID uuid.UUID) ([]*FieldSummary, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}
	ctx, cancel := context.WithTimeout(ctx, fetchBudget)
	defer cancel()

	var (
		fields   []*types.Field
		progress []*types.UserFieldProgress
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var gerr error
		fields, gerr = s.fieldRepo.GetAll(gctx, nil)
		return gerr
	})
	g.Go(func() error {
		var gerr error
		progress, gerr = s.fieldProgRepo.GetByUserID(gctx, nil, userID)
		return gerr
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch fields: %w", err)
	}

	progByField := make(map[uuid.UUID]*types.UserFieldProgress, len(progress))
	for _, p := range progress {
		progByField[p.FieldID] = p
	}
	out := make([]*FieldSummary, 0, len(fields))
	for _, f := range fields {
		out = append(out, &FieldSummary{Field: f, Progress: progByField[f.ID]})
	}
	return out, nil
}
