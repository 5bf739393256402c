package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/google/uuid"

	"github.com/aspira-app/aspira-backend/internal/logger"
	"github.com/aspira-app/aspira-backend/internal/types"
)

const avatarSize = 256

// avatarPalette gives each user a stable background color from their id.
var avatarPalette = [][3]float64{
	{0.91, 0.30, 0.24},
	{0.95, 0.61, 0.07},
	{0.15, 0.68, 0.38},
	{0.16, 0.50, 0.73},
	{0.55, 0.27, 0.68},
	{0.17, 0.63, 0.60},
}

// AvatarService renders a default avatar for new users into the local media
// directory. Rendering failure never blocks registration.
type AvatarService interface {
	GenerateUserAvatar(user *types.User) (string, error)
}

type avatarService struct {
	log      *logger.Logger
	mediaDir string
	baseURL  string
}

func NewAvatarService(log *logger.Logger, mediaDir, baseURL string) AvatarService {
	return &avatarService{
		log:      log.With("service", "AvatarService"),
		mediaDir: mediaDir,
		baseURL:  baseURL,
	}
}

func (s *avatarService) GenerateUserAvatar(user *types.User) (string, error) {
	if user == nil || user.ID == uuid.Nil {
		return "", fmt.Errorf("user with id required")
	}
	if err := os.MkdirAll(filepath.Join(s.mediaDir, "avatars"), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	dc := gg.NewContext(avatarSize, avatarSize)
	bg := avatarPalette[int(user.ID[0])%len(avatarPalette)]
	dc.SetRGB(bg[0], bg[1], bg[2])
	dc.Clear()

	// Lighter inner disc keyed off another id byte so avatars differ even
	// within one palette bucket.
	shade := 0.25 + float64(user.ID[1]%64)/256.0
	dc.SetRGBA(1, 1, 1, shade)
	dc.DrawCircle(avatarSize/2, avatarSize/2, avatarSize/2.8)
	dc.Fill()

	dc.SetRGBA(1, 1, 1, shade/2)
	dc.DrawCircle(avatarSize/2, avatarSize/1.55, avatarSize/2.2)
	dc.Fill()

	name := fmt.Sprintf("%s.png", user.ID)
	path := filepath.Join(s.mediaDir, "avatars", name)
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save avatar png: %w", err)
	}
	return fmt.Sprintf("%s/media/avatars/%s", s.baseURL, name), nil
}
