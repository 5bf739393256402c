package app

import (
	"github.com/aspira-app/aspira-backend/internal/handlers"
	"github.com/aspira-app/aspira-backend/internal/logger"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Todo        *handlers.TodoHandler
	Quest       *handlers.QuestHandler
	Learn       *handlers.LearnHandler
	Leaderboard *handlers.LeaderboardHandler
	Onboarding  *handlers.OnboardingHandler
	Coach       *handlers.CoachHandler
	Journal     *handlers.JournalHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:        handlers.NewAuthHandler(services.Auth),
		User:        handlers.NewUserHandler(services.User),
		Todo:        handlers.NewTodoHandler(services.Todo),
		Quest:       handlers.NewQuestHandler(services.Quest),
		Learn:       handlers.NewLearnHandler(services.Progression),
		Leaderboard: handlers.NewLeaderboardHandler(services.Leaderboard),
		Onboarding:  handlers.NewOnboardingHandler(services.Onboarding),
		Coach:       handlers.NewCoachHandler(services.Coach),
		Journal:     handlers.NewJournalHandler(services.Journal),
	}
}
