package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LeagueBronze   = "bronze"
	LeagueSilver   = "silver"
	LeagueGold     = "gold"
	LeaguePlatinum = "platinum"
	LeagueDiamond  = "diamond"
)

// LeagueOrder lists leagues from lowest to highest.
var LeagueOrder = []string{LeagueBronze, LeagueSilver, LeagueGold, LeaguePlatinum, LeagueDiamond}

func IsValidLeague(league string) bool {
	for _, l := range LeagueOrder {
		if l == league {
			return true
		}
	}
	return false
}

// UserFieldProgress is per-user, per-field state. Rows for every field are
// created at onboarding completion; only the chosen field starts unlocked.
type UserFieldProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_field,unique" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	FieldID   uuid.UUID `gorm:"type:uuid;not null;index:idx_user_field,unique" json:"field_id"`
	Field     *Field    `gorm:"constraint:OnDelete:CASCADE;foreignKey:FieldID;references:ID" json:"field,omitempty"`
	Level     int       `gorm:"not null;default:1" json:"level"`
	XP        int       `gorm:"column:xp;not null;default:0" json:"xp"`
	Unlocked  bool      `gorm:"not null;default:false" json:"unlocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserFieldProgress) TableName() string { return "user_field_progress" }

func (p *UserFieldProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// UserGlobalProgress is the per-user aggregate mutated by XP-awarding events.
type UserGlobalProgress struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	GlobalLevel int       `gorm:"not null;default:1" json:"global_level"`
	GlobalXP    int       `gorm:"column:global_xp;not null;default:0" json:"global_xp"`
	League      string    `gorm:"not null;default:'bronze';index" json:"league"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (UserGlobalProgress) TableName() string { return "user_global_progress" }

func (p *UserGlobalProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// UserLevel maps a level to the XP threshold required to reach the next one.
// Static reference data seeded from gamedata.
type UserLevel struct {
	Level       int       `gorm:"primaryKey;autoIncrement:false" json:"level"`
	XPThreshold int       `gorm:"column:xp_threshold;not null" json:"xp_threshold"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (UserLevel) TableName() string { return "user_level" }

// UserSurveyResponse is a self-reported skill score, written once at
// onboarding and read only to compute the initial field level.
type UserSurveyResponse struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_field_skill,unique" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	FieldID   uuid.UUID `gorm:"type:uuid;not null;index:idx_user_field_skill,unique" json:"field_id"`
	Field     *Field    `gorm:"constraint:OnDelete:CASCADE;foreignKey:FieldID;references:ID" json:"field,omitempty"`
	Skill     string    `gorm:"not null;index:idx_user_field_skill,unique" json:"skill"`
	Score     int       `gorm:"not null;default:0" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserSurveyResponse) TableName() string { return "user_survey_response" }

func (r *UserSurveyResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
