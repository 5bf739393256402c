package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuestCategoryCore = "core"
	QuestCategorySide = "side"

	QuestTypeDaily   = "daily"
	QuestTypeSide    = "side"
	QuestTypePenalty = "penalty"

	QuestStatusActive    = "active"
	QuestStatusCompleted = "completed"
	QuestStatusFailed    = "failed"
)

// QuestTemplate is a reusable, globally defined quest. Templates scoped to a
// sub-module are "core"; standalone templates are "side". Templates carry no
// per-user state; completion lives in UserQuestProgress.
type QuestTemplate struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SubModuleID *uuid.UUID     `gorm:"type:uuid;index" json:"sub_module_id,omitempty"`
	SubModule   *SubModule     `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubModuleID;references:ID" json:"sub_module,omitempty"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Difficulty  string         `gorm:"not null;default:'medium'" json:"difficulty"`
	XPReward    int            `gorm:"column:xp_reward;not null;default:0" json:"xp_reward"`
	Mandatory   bool           `gorm:"not null;default:false" json:"mandatory"`
	Metadata    datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (QuestTemplate) TableName() string { return "module_quest_template" }

func (q *QuestTemplate) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (q *QuestTemplate) Category() string {
	if q.SubModuleID != nil {
		return QuestCategoryCore
	}
	return QuestCategorySide
}

// Quest is the legacy per-user quest row. It predates the template model and
// coexists with it: completion recording updates its denormalized status when
// a row with the same id exists.
type Quest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Type        string     `gorm:"not null;default:'daily'" json:"type"`
	Status      string     `gorm:"not null;default:'active'" json:"status"`
	XPReward    int        `gorm:"column:xp_reward;not null;default:0" json:"xp_reward"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Quest) TableName() string { return "quest" }

func (q *Quest) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// UserQuestProgress records one user's progress against one quest id (template
// or legacy). At most one row per (user, quest).
type UserQuestProgress struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_quest,unique" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QuestID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_quest,unique" json:"quest_id"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (UserQuestProgress) TableName() string { return "user_quest_progress" }

func (p *UserQuestProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
