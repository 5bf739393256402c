package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/aspira-app/aspira-backend/internal/clients/redis"
	"github.com/aspira-app/aspira-backend/internal/db"
	"github.com/aspira-app/aspira-backend/internal/gamedata"
	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/observability"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	cache        redisclient.LeaderboardCache
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	// Redis is optional; without it the leaderboard just re-ranks per request.
	cache, cacheErr := redisclient.NewLeaderboardCache(log)
	if cacheErr != nil {
		log.Warn("Leaderboard cache unavailable, continuing without it", "error", cacheErr)
		cache = nil
	}

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, reposet, cache)
	if err != nil {
		log.Sync()
		return nil, err
	}

	data, err := gamedata.Load(cfg.GameDataPath, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load gamedata: %w", err)
	}
	if err := serviceset.Onboarding.SeedLevels(context.Background(), data); err != nil {
		log.Sync()
		return nil, fmt.Errorf("seed levels: %w", err)
	}

	handlerset := wireHandlers(log, serviceset)
	middlewareset := wireMiddleware(log, serviceset)
	router := wireRouter(cfg, handlerset, middlewareset)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		cache:        cache,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.Log.Warn("Failed to close leaderboard cache", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("Failed to shut down tracing", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
