package app

import (
	"time"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/utils"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	MediaDir        string
	PublicBaseURL   string
	GameDataPath    string
	ServiceName     string
	Environment     string
	Version         string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	mediaDir := utils.GetEnv("MEDIA_DIR", "./media", log)
	publicBaseURL := utils.GetEnv("PUBLIC_BASE_URL", "http://localhost:8080", log)
	gameDataPath := utils.GetEnv("GAMEDATA_PATH", "", log)
	environment := utils.GetEnv("APP_ENV", "development", log)
	version := utils.GetEnv("APP_VERSION", "dev", log)
	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		MediaDir:        mediaDir,
		PublicBaseURL:   publicBaseURL,
		GameDataPath:    gameDataPath,
		ServiceName:     "aspira-backend",
		Environment:     environment,
		Version:         version,
	}
}
