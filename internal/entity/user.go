package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User mirrors the identity record owned by the external auth provider.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email           *string   `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	FirstName       *string   `gorm:"size:100" json:"first_name,omitempty"`
	LastName        *string   `gorm:"size:100" json:"last_name,omitempty"`
	ProfileImageURL *string   `gorm:"type:text" json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
