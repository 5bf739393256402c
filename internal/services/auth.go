package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aspira-app/aspira-backend/internal/logger"
	apperrors "github.com/aspira-app/aspira-backend/internal/pkg/errors"
	"github.com/aspira-app/aspira-backend/internal/repos"
	"github.com/aspira-app/aspira-backend/internal/requestdata"
	"github.com/aspira-app/aspira-backend/internal/types"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	avatarService AvatarService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	avatarService AvatarService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		avatarService: avatarService,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	if user == nil {
		return apperrors.ErrInvalidArgument
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
	if user.Email == "" || user.Password == "" || user.FirstName == "" || user.LastName == "" {
		return fmt.Errorf("email, password, first and last name are required: %w", apperrors.ErrInvalidArgument)
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return fmt.Errorf("email is already in use: %w", apperrors.ErrInvalidArgument)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)
	user.ID = uuid.New()

	if as.avatarService != nil {
		if url, aerr := as.avatarService.GenerateUserAvatar(user); aerr != nil {
			as.log.Warn("Avatar generation failed, registering without one", "error", aerr)
		} else {
			user.AvatarURL = url
		}
	}

	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required: %w", apperrors.ErrInvalidArgument)
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", "", fmt.Errorf("fetch user by email: %w", err)
	}
	if len(users) == 0 {
		return "", "", apperrors.ErrUnauthorized
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", apperrors.ErrUnauthorized
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		if _, cerr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{{
			UserID:    user.ID,
			Token:     refreshToken,
			ExpiresAt: time.Now().Add(as.refreshTTL),
		}}); cerr != nil {
			return fmt.Errorf("store refresh token: %w", cerr)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", "", apperrors.ErrUnauthorized
	}

	var accessToken, newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, terr := as.userTokenRepo.GetByToken(ctx, tx, refreshToken)
		if terr != nil {
			return fmt.Errorf("fetch refresh token: %w", terr)
		}
		if existing == nil {
			return apperrors.ErrUnauthorized
		}
		if existing.ExpiresAt.Before(time.Now()) {
			if derr := as.userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{existing.UserID}); derr != nil {
				as.log.Warn("Failed to delete expired refresh token", "error", derr)
			}
			return apperrors.ErrUnauthorized
		}
		users, uerr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.UserID})
		if uerr != nil {
			return fmt.Errorf("fetch user for refresh: %w", uerr)
		}
		if len(users) == 0 {
			return apperrors.ErrUnauthorized
		}
		user := users[0]

		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		if _, cerr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{{
			UserID:    user.ID,
			Token:     newRefreshToken,
			ExpiresAt: time.Now().Add(as.refreshTTL),
		}}); cerr != nil {
			return fmt.Errorf("store rotated refresh token: %w", cerr)
		}
		// Rotation: the presented token is spent.
		if derr := tx.WithContext(ctx).Where("token = ?", refreshToken).Delete(&types.UserToken{}).Error; derr != nil {
			return fmt.Errorf("spend old refresh token: %w", derr)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apperrors.ErrUnauthorized
	}
	return as.userTokenRepo.FullDeleteByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apperrors.ErrUnauthorized
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("parse token: %w", apperrors.ErrUnauthorized)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apperrors.ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", apperrors.ErrUnauthorized)
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
