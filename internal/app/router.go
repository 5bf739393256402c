package app

import (
	"github.com/gin-gonic/gin"

	"github.com/aspira-app/aspira-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:        cfg.ServiceName,
		MediaDir:           cfg.MediaDir,
		AuthHandler:        handlers.Auth,
		AuthMiddleware:     middleware.Auth,
		UserHandler:        handlers.User,
		TodoHandler:        handlers.Todo,
		QuestHandler:       handlers.Quest,
		LearnHandler:       handlers.Learn,
		LeaderboardHandler: handlers.Leaderboard,
		OnboardingHandler:  handlers.Onboarding,
		CoachHandler:       handlers.Coach,
		JournalHandler:     handlers.Journal,
	})
}
