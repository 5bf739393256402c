package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

// LeaderboardCache keeps short-lived league snapshots so a hot leaderboard
// page does not re-rank on every request. The store stays authoritative; a
// miss or a redis failure just means recomputing.
type LeaderboardCache interface {
	Get(ctx context.Context, league string, limit int) ([]*types.RankedUser, bool)
	Set(ctx context.Context, league string, limit int, rows []*types.RankedUser)
	Close() error
}

type leaderboardCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewLeaderboardCache(log *logger.Logger) (LeaderboardCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	ttl := 30 * time.Second
	if v := strings.TrimSpace(os.Getenv("LEADERBOARD_CACHE_TTL_SECONDS")); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil && d > 0 {
			ttl = d
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &leaderboardCache{
		log: log.With("service", "LeaderboardCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func cacheKey(league string, limit int) string {
	return fmt.Sprintf("leaderboard:%s:%d", league, limit)
}

func (c *leaderboardCache) Get(ctx context.Context, league string, limit int) ([]*types.RankedUser, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(league, limit)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Leaderboard cache read failed", "league", league, "error", err)
		}
		return nil, false
	}
	var rows []*types.RankedUser
	if err := json.Unmarshal(raw, &rows); err != nil {
		c.log.Warn("Leaderboard cache payload corrupt, ignoring", "league", league, "error", err)
		return nil, false
	}
	return rows, true
}

func (c *leaderboardCache) Set(ctx context.Context, league string, limit int, rows []*types.RankedUser) {
	raw, err := json.Marshal(rows)
	if err != nil {
		c.log.Warn("Leaderboard cache encode failed", "league", league, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(league, limit), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Leaderboard cache write failed", "league", league, "error", err)
	}
}

func (c *leaderboardCache) Close() error {
	return c.rdb.Close()
}
