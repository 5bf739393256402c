package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/aspira-app/aspira-backend/internal/logger"
	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
	"github.com/aspira-app/aspira-backend/internal/repos"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error)
}

// UserProfile bundles the account row with the caller's global standing.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Level     int       `json:"level"`
	GlobalXP  int       `json:"global_xp"`
	League    string    `json:"league"`
}

type userService struct {
	userRepo   repos.UserRepo
	globalRepo repos.UserGlobalProgressRepo
	log        *logger.Logger
}

func NewUserService(
	userRepo repos.UserRepo,
	globalRepo repos.UserGlobalProgressRepo,
	baseLog *logger.Logger,
) UserService {
	return &userService{
		userRepo:   userRepo,
		globalRepo: globalRepo,
		log:        baseLog.With("service", "UserService"),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.ErrNotFound
	}
	u := users[0]

	profile := &UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
		Level:     1,
	}
	global, err := s.globalRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if global != nil {
		profile.Level = global.GlobalLevel
		profile.GlobalXP = global.GlobalXP
		profile.League = global.League
	}
	return profile, nil
}
