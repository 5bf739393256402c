package types

import "github.com/google/uuid"

// View structures returned by the progression engine. These are computed per
// request from store rows and never persisted.

type QuestStats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type SubModuleView struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	OrderIndex      int        `json:"order_index"`
	UnlockThreshold int        `json:"unlock_threshold"`
	IsUnlocked      bool       `json:"is_unlocked"`
	IsCompleted     bool       `json:"is_completed"`
	QuestStats      QuestStats `json:"quest_stats"`
}

type ModuleView struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	UnlockThreshold int             `json:"unlock_threshold"`
	QuestStats      QuestStats      `json:"quest_stats"`
	SubModules      []SubModuleView `json:"sub_modules"`
}

// LevelProgress carries the progress-bar numbers for a field. When the level
// table has no entry for the next level the user is at the table's ceiling
// and MaxLevelReached is set instead of a made-up target.
type LevelProgress struct {
	Level           int  `json:"level"`
	XP              int  `json:"xp"`
	NextLevelXP     int  `json:"next_level_xp"`
	MaxLevelReached bool `json:"max_level_reached"`
}

type FieldPath struct {
	FieldID       uuid.UUID     `json:"field_id"`
	FieldName     string        `json:"field_name"`
	Unlocked      bool          `json:"unlocked"`
	LevelProgress LevelProgress `json:"level_progress"`
	Modules       []ModuleView  `json:"modules"`
}
