package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CharacterProgress records a user's mastery flags for one character.
// An absent row means all three flags are false; callers are expected to
// treat the two identically.
type CharacterProgress struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_char" json:"user_id"`
	User           *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CharacterIndex int       `gorm:"not null;uniqueIndex:idx_user_char" json:"character_index"`
	Reading        bool      `gorm:"not null;default:false" json:"reading"`
	Writing        bool      `gorm:"not null;default:false" json:"writing"`
	Radical        bool      `gorm:"not null;default:false" json:"radical"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CharacterProgress) TableName() string {
	return "character_progress"
}

func (p *CharacterProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
