package models

import (
	"time"

	"github.com/google/uuid"
)

type Story struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Subtitle    string     `gorm:"size:255" json:"subtitle"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string     `gorm:"type:text" json:"description"`
	AgeGroup    string     `gorm:"size:20" json:"age_group"` // e.g. "3-6", "7-9"
	CoverImage  string     `gorm:"type:text" json:"cover_image"`
	Status      string     `gorm:"type:VARCHAR(20);default:'draft'" json:"status"` // draft | published | archived
	PlayCount   int        `gorm:"default:0" json:"play_count"`
	LikeCount   int        `gorm:"default:0" json:"like_count"`
	RatingAvg   float64    `gorm:"default:0" json:"rating_avg"`
	RatingCount int        `gorm:"default:0" json:"rating_count"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`

	Episodes   []Episode   `gorm:"foreignKey:StoryID" json:"episodes,omitempty"`
	Characters []Character `gorm:"foreignKey:StoryID" json:"characters,omitempty"`
	Categories []Category  `gorm:"many2many:story_categories" json:"categories,omitempty"`
	Tags       []Tag       `gorm:"many2many:story_tags" json:"tags,omitempty"`
}
