package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayHistory stores the last playback position per user and episode so the
// player can resume where the listener left off.
type PlayHistory struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	EpisodeID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"episode_id"`
	PositionSec int       `gorm:"not null;default:0" json:"position_sec"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User    User    `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Episode Episode `gorm:"constraint:OnDelete:CASCADE;" json:"episode,omitempty"`
}
