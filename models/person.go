package models

import (
	"time"

	"github.com/google/uuid"
)

// Person is a voice actor profile. Episodes reference people through
// EpisodeVoiceActor segments; the person record itself holds only profile
// data.
type Person struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName  string    `gorm:"size:150;not null" json:"full_name"`
	Slug      string    `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Bio       string    `gorm:"type:text" json:"bio"`
	ImageURL  string    `gorm:"type:text" json:"image_url"`
	Status    bool      `gorm:"default:true" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Segments []EpisodeVoiceActor `gorm:"foreignKey:PersonID" json:"segments,omitempty"`
}
