package models

import (
	"time"

	"github.com/google/uuid"
)

type Character struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoryID     uuid.UUID `gorm:"type:uuid;not null;index" json:"story_id"`
	Story       Story     `gorm:"constraint:OnDelete:CASCADE;" json:"story,omitempty"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"type:text" json:"image_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
