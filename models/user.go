package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor" // content team: stories, episodes, timelines
	RoleUser   UserRole = "user"   // listener
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName    string    `gorm:"size:150;not null" json:"full_name"`
	Email       string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PhoneNumber string    `gorm:"size:20" json:"phone_number"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	Role        UserRole  `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Status      *bool     `gorm:"default:true" json:"status"`
	AvatarURL   string    `gorm:"type:text" json:"avatar_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Favorites []Favorite `json:"favorites,omitempty"`
	Ratings   []Rating   `json:"ratings,omitempty"`
}
