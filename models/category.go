package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Slug      string    `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	IconURL   string    `gorm:"type:text" json:"icon_url"`
	Status    bool      `gorm:"default:true" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Stories []Story `gorm:"many2many:story_categories" json:"stories,omitempty"`
}
