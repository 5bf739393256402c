package gamedata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aspira-app/aspira-backend/internal/logger"
)

// GameData holds static progression reference data. Operators can override
// the built-in table with a YAML file (GAMEDATA_PATH); the file wins wholesale
// when present.
type GameData struct {
	Levels []LevelThreshold `yaml:"levels"`
}

// LevelThreshold maps a level to the XP required to reach the next one.
type LevelThreshold struct {
	Level       int `yaml:"level"`
	XPThreshold int `yaml:"xp_threshold"`
}

func defaults() GameData {
	levels := make([]LevelThreshold, 0, 10)
	for lvl := 1; lvl <= 10; lvl++ {
		levels = append(levels, LevelThreshold{Level: lvl, XPThreshold: lvl * 100})
	}
	return GameData{Levels: levels}
}

func Load(path string, log *logger.Logger) (GameData, error) {
	if path == "" {
		return defaults(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return GameData{}, fmt.Errorf("read gamedata file: %w", err)
	}
	var gd GameData
	if err := yaml.Unmarshal(raw, &gd); err != nil {
		return GameData{}, fmt.Errorf("parse gamedata file: %w", err)
	}
	if len(gd.Levels) == 0 {
		return GameData{}, fmt.Errorf("gamedata file %s defines no levels", path)
	}
	seen := make(map[int]bool, len(gd.Levels))
	for _, lt := range gd.Levels {
		if lt.Level < 1 {
			return GameData{}, fmt.Errorf("gamedata level %d: levels start at 1", lt.Level)
		}
		if lt.XPThreshold < 0 {
			return GameData{}, fmt.Errorf("gamedata level %d: negative xp threshold", lt.Level)
		}
		if seen[lt.Level] {
			return GameData{}, fmt.Errorf("gamedata level %d defined twice", lt.Level)
		}
		seen[lt.Level] = true
	}
	if log != nil {
		log.Info("Loaded gamedata overrides", "path", path, "levels", len(gd.Levels))
	}
	return gd, nil
}
