package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/aspira-app/aspira-backend/internal/clients/redis"
	"github.com/aspira-app/aspira-backend/internal/logger"
	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
	"github.com/aspira-app/aspira-backend/internal/repos"
	"github.com/aspira-app/aspira-backend/internal/types"
)

const defaultLeaderboardLimit = 100

type LeaderboardService interface {
	// GetRank counts same-league users with strictly greater XP. Ties can
	// land on adjacent ranks in row order; the display tolerates that.
	GetRank(ctx context.Context, userID uuid.UUID) (*types.RankInfo, error)
	GetLeaderboard(ctx context.Context, league string, limit int) ([]*types.RankedUser, error)
}

type leaderboardService struct {
	db         *gorm.DB
	log        *logger.Logger
	globalRepo repos.UserGlobalProgressRepo
	userRepo   repos.UserRepo
	cache      redisclient.LeaderboardCache
}

// NewLeaderboardService accepts a nil cache; ranking then always hits the store.
func NewLeaderboardService(
	db *gorm.DB,
	log *logger.Logger,
	globalRepo repos.UserGlobalProgressRepo,
	userRepo repos.UserRepo,
	cache redisclient.LeaderboardCache,
) LeaderboardService {
	return &leaderboardService{
		db:         db,
		log:        log.With("service", "LeaderboardService"),
		globalRepo: globalRepo,
		userRepo:   userRepo,
		cache:      cache,
	}
}

func (s *leaderboardService) GetRank(ctx context.Context, userID uuid.UUID) (*types.RankInfo, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}
	global, err := s.globalRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch global progress: %w", err)
	}
	if global == nil {
		return nil, apperrors.ErrNotFound
	}
	ahead, err := s.globalRepo.CountInLeagueWithMoreXP(ctx, nil, global.League, global.GlobalXP)
	if err != nil {
		return nil, fmt.Errorf("count users ahead: %w", err)
	}
	return &types.RankInfo{
		Rank:        int(ahead) + 1,
		League:      global.League,
		GlobalXP:    global.GlobalXP,
		GlobalLevel: global.GlobalLevel,
	}, nil
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, league string, limit int) ([]*types.RankedUser, error) {
	if !types.IsValidLeague(league) {
		return nil, apperrors.ErrInvalidArgument
	}
	if limit <= 0 || limit > defaultLeaderboardLimit {
		limit = defaultLeaderboardLimit
	}

	if s.cache != nil {
		if rows, ok := s.cache.Get(ctx, league, limit); ok {
			return rows, nil
		}
	}

	top, err := s.globalRepo.GetLeagueTop(ctx, nil, league, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch league top: %w", err)
	}
	total, err := s.globalRepo.CountInLeague(ctx, nil, league)
	if err != nil {
		return nil, fmt.Errorf("count league members: %w", err)
	}

	userIDs := make([]uuid.UUID, 0, len(top))
	for _, g := range top {
		userIDs = append(userIDs, g.UserID)
	}
	users, err := s.userRepo.GetByIDs(ctx, nil, userIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch ranked users: %w", err)
	}
	usersByID := make(map[uuid.UUID]*types.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	rows := rankRows(top, usersByID, int(total))

	if s.cache != nil {
		s.cache.Set(ctx, league, limit, rows)
	}
	return rows, nil
}

// rankRows annotates positions and zone membership. Zones are badges only;
// nothing in this service moves users between leagues.
func rankRows(top []*types.UserGlobalProgress, usersByID map[uuid.UUID]*types.User, total int) []*types.RankedUser {
	promoCutoff, demoCutoff := zoneCutoffs(total)
	rows := make([]*types.RankedUser, 0, len(top))
	for i, g := range top {
		position := i + 1
		row := &types.RankedUser{
			UserID:      g.UserID,
			GlobalXP:    g.GlobalXP,
			GlobalLevel: g.GlobalLevel,
			Position:    position,
			InPromotion: position <= promoCutoff,
			InDemotion:  position > demoCutoff,
		}
		if u := usersByID[g.UserID]; u != nil {
			row.FirstName = u.FirstName
			row.AvatarURL = u.AvatarURL
		}
		rows = append(rows, row)
	}
	return rows
}

// zoneCutoffs returns the last promotion position and the last safe position:
// promotion for position <= ceil(0.2*total), demotion for position > floor(0.8*total).
func zoneCutoffs(total int) (promotion, demotion int) {
	if total <= 0 {
		return 0, 0
	}
	promotion = int(math.Ceil(0.2 * float64(total)))
	demotion = int(math.Floor(0.8 * float64(total)))
	return promotion, demotion
}
