package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is one user's score for a story, 1..5 with an optional review.
// One row per (user, story); resubmitting updates the existing row.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_story" json:"user_id"`
	StoryID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_story" json:"story_id"`
	Score     int       `gorm:"not null" json:"score"`
	Review    string    `gorm:"type:text" json:"review"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User  User  `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Story Story `gorm:"constraint:OnDelete:CASCADE;" json:"story,omitempty"`
}
