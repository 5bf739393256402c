package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/aspira-app/aspira-backend/internal/handlers"
	"github.com/aspira-app/aspira-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName        string
	MediaDir           string
	AuthHandler        *handlers.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	UserHandler        *handlers.UserHandler
	TodoHandler        *handlers.TodoHandler
	QuestHandler       *handlers.QuestHandler
	LearnHandler       *handlers.LearnHandler
	LeaderboardHandler *handlers.LeaderboardHandler
	OnboardingHandler  *handlers.OnboardingHandler
	CoachHandler       *handlers.CoachHandler
	JournalHandler     *handlers.JournalHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Todos
	protected.GET("/todos", cfg.TodoHandler.List)
	protected.POST("/todos", cfg.TodoHandler.Create)
	protected.PATCH("/todos/:id", cfg.TodoHandler.Update)
	protected.DELETE("/todos/:id", cfg.TodoHandler.Delete)
	// Quests
	protected.GET("/quests/progress", cfg.QuestHandler.GetProgress)
	protected.POST("/quests/progress", cfg.QuestHandler.RecordProgress)
	protected.GET("/quests/stats", cfg.QuestHandler.Stats)
	// Learn
	protected.GET("/learn/quests", cfg.QuestHandler.ListActive)
	protected.GET("/learn/fields", cfg.LearnHandler.ListFields)
	protected.GET("/learn/fields/:id/path", cfg.LearnHandler.GetFieldPath)
	// Leaderboard
	protected.GET("/leaderboard", cfg.LeaderboardHandler.GetLeaderboard)
	protected.GET("/leaderboard/rank", cfg.LeaderboardHandler.GetRank)
	// Onboarding
	protected.POST("/onboarding/complete", cfg.OnboardingHandler.Complete)
	// AI coach
	protected.POST("/ai/coach", cfg.CoachHandler.Respond)
	// Journal
	protected.GET("/journal", cfg.JournalHandler.List)
	protected.POST("/journal", cfg.JournalHandler.Create)
	protected.GET("/journal/:id", cfg.JournalHandler.Get)
	protected.DELETE("/journal/:id", cfg.JournalHandler.Delete)

	return router
}
