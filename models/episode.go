package models

import (
	"time"

	"github.com/google/uuid"
)

type Episode struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoryID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"story_id"`
	Story         Story      `gorm:"constraint:OnDelete:CASCADE;" json:"story,omitempty"`
	EpisodeNumber int        `gorm:"not null;default:1" json:"episode_number"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Script        string     `gorm:"type:text" json:"script"` // narration script, extracted from the uploaded document
	AudioURL      string     `gorm:"type:text" json:"audio_url"`
	DurationSec   int        `json:"duration_sec"` // measured from the uploaded MP3
	CoverImage    string     `gorm:"type:text" json:"cover_image"`
	Status        string     `gorm:"type:VARCHAR(20);default:'draft'" json:"status"` // draft | published | archived
	IsPremium     bool       `gorm:"default:false" json:"is_premium"`
	PlayCount     int        `gorm:"default:0" json:"play_count"`
	LikeCount     int        `gorm:"default:0" json:"like_count"`
	// UseImageTimeline marks episodes whose image timeline must cover the
	// whole audio from second 0 with no gaps; the player relies on always
	// having an image to show for these.
	UseImageTimeline bool       `gorm:"default:false" json:"use_image_timeline"`
	CreatedBy        uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	PublishedAt      *time.Time `json:"published_at"`

	ImageTimelines []ImageTimeline     `gorm:"foreignKey:EpisodeID" json:"image_timelines,omitempty"`
	VoiceActors    []EpisodeVoiceActor `gorm:"foreignKey:EpisodeID" json:"voice_actors,omitempty"`
}
