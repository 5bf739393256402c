package types

import (
	"time"

	"github.com/google/uuid"
)

// QuestView is the wire shape shared by template-backed and legacy quests.
// Templates carry no per-user status, so template-backed views always report
// "active"; the client joins against progress for completion.
type QuestView struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Type        string     `json:"type"`
	Difficulty  string     `json:"difficulty,omitempty"`
	XPReward    int        `json:"xp_reward"`
	Mandatory   bool       `json:"mandatory"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// QuestList is the response envelope the learning UI expects; the legacy
// quest listing used the same two buckets.
type QuestList struct {
	DailyQuests   []QuestView `json:"dailyQuests"`
	PenaltyQuests []QuestView `json:"penaltyQuests"`
}

type QuestStatsView struct {
	TodayCompleted   int64 `json:"today_completed"`
	DailyTotal       int   `json:"daily_total"`
	AllTimeCompleted int64 `json:"all_time_completed"`
}
