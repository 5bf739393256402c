package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Field is a top-level growth domain. Seeded by operators, read-only to users.
type Field struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description"`
	UnlockThreshold int       `gorm:"not null;default:1" json:"unlock_threshold"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Field) TableName() string { return "field" }

func (f *Field) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Module groups sub-modules within a field. UnlockThreshold is the field
// level required before any of its content unlocks, and doubles as the
// display sort key.
type Module struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FieldID         uuid.UUID `gorm:"type:uuid;not null;index" json:"field_id"`
	Field           *Field    `gorm:"constraint:OnDelete:CASCADE;foreignKey:FieldID;references:ID" json:"field,omitempty"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `json:"description"`
	UnlockThreshold int       `gorm:"not null;default:1" json:"unlock_threshold"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Module) TableName() string { return "module" }

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type SubModule struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID        uuid.UUID `gorm:"type:uuid;not null;index" json:"module_id"`
	Module          *Module   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `json:"description"`
	OrderIndex      int       `gorm:"not null;default:0" json:"order_index"`
	UnlockThreshold int       `gorm:"not null;default:1" json:"unlock_threshold"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (SubModule) TableName() string { return "sub_module" }

func (s *SubModule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
