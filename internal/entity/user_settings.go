package entity

import (
	"time"

	"github.com/google/uuid"
)

// Defaults applied when settings are created on first access.
const (
	DefaultCurrentLevel         = 0
	DefaultDailyCharCount       = 5
	DefaultPreferTraditional    = true
	DefaultStandardModePageSize = 20
)

// UserSettings holds per-user study preferences. At most one row per user.
type UserSettings struct {
	UserID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User                 *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CurrentLevel         int       `gorm:"not null;default:0" json:"current_level"`
	DailyCharCount       int       `gorm:"not null;default:5" json:"daily_char_count"`
	PreferTraditional    bool      `gorm:"not null;default:true" json:"prefer_traditional"`
	StandardModePageSize int       `gorm:"not null;default:20" json:"standard_mode_page_size"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
