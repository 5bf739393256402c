package app

import (
	"gorm.io/gorm"

	redisclient "github.com/aspira-app/aspira-backend/internal/clients/redis"
	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/services"
)

type Services struct {
	Avatar      services.AvatarService
	Auth        services.AuthService
	User        services.UserService
	Progression services.ProgressionService
	Quest       services.QuestService
	Leaderboard services.LeaderboardService
	Onboarding  services.OnboardingService
	Todo        services.TodoService
	Journal     services.JournalService
	Coach       services.CoachService
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	r Repos,
	cache redisclient.LeaderboardCache,
) (Services, error) {
	log.Info("Wiring services...")

	avatarService := services.NewAvatarService(log, cfg.MediaDir, cfg.PublicBaseURL)
	authService := services.NewAuthService(
		db, log,
		r.User, r.UserToken,
		avatarService,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	userService := services.NewUserService(r.User, r.UserGlobalProgress, log)
	progressionService := services.NewProgressionService(
		db, log,
		r.Field, r.Module, r.SubModule,
		r.QuestTemplate, r.UserFieldProgress, r.UserQuestProgress, r.UserLevel,
	)
	questService := services.NewQuestService(
		db, log,
		r.QuestTemplate, r.Quest, r.UserQuestProgress, r.UserGlobalProgress,
	)
	leaderboardService := services.NewLeaderboardService(
		db, log,
		r.UserGlobalProgress, r.User,
		cache,
	)
	onboardingService := services.NewOnboardingService(
		db, log,
		r.Field, r.UserFieldProgress, r.UserGlobalProgress,
		r.UserSurveyResponse, r.UserLevel,
	)
	todoService := services.NewTodoService(db, log, r.Todo)
	journalService := services.NewJournalService(db, log, r.JournalEntry)

	// The coach degrades to a canned reply when no upstream is configured.
	completionClient, err := services.NewCompletionClient(log)
	if err != nil {
		log.Warn("Completion client unavailable; coach will use fallback replies", "error", err)
		completionClient = nil
	}
	coachService := services.NewCoachService(log, completionClient, r.JournalEntry)

	return Services{
		Avatar:      avatarService,
		Auth:        authService,
		User:        userService,
		Progression: progressionService,
		Quest:       questService,
		Leaderboard: leaderboardService,
		Onboarding:  onboardingService,
		Todo:        todoService,
		Journal:     journalService,
		Coach:       coachService,
	}, nil
}
