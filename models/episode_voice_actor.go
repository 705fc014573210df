package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sarvcast/sarvcast-backend/timeline"
)

// EpisodeVoiceActor assigns a voice actor to a time range of an episode.
// Unlike image timelines these segments may leave gaps (silence, music) and
// support incremental create/update/delete.
type EpisodeVoiceActor struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EpisodeID        uuid.UUID `gorm:"type:uuid;not null;index" json:"episode_id"`
	Episode          Episode   `gorm:"constraint:OnDelete:CASCADE;" json:"episode,omitempty"`
	PersonID         uuid.UUID `gorm:"type:uuid;not null;index" json:"person_id"`
	Person           Person    `gorm:"constraint:OnDelete:RESTRICT;" json:"person,omitempty"`
	StartTime        int       `gorm:"not null" json:"start_time"`
	EndTime          int       `gorm:"not null" json:"end_time"`
	Role             string    `gorm:"size:100;not null" json:"role"` // narrator | character | ...
	CharacterName    string    `gorm:"size:150" json:"character_name"`
	VoiceDescription string    `gorm:"type:text" json:"voice_description"`
	IsPrimary        bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ToSegment converts the row to the engine's segment representation.
func (va EpisodeVoiceActor) ToSegment() timeline.Segment {
	return timeline.Segment{
		ID:    va.ID,
		Start: va.StartTime,
		End:   va.EndTime,
		Payload: timeline.VoiceActorPayload{
			PersonID:         va.PersonID,
			Role:             va.Role,
			CharacterName:    va.CharacterName,
			VoiceDescription: va.VoiceDescription,
			IsPrimary:        va.IsPrimary,
		},
	}
}

// VoiceActorFromSegment builds a row for episodeID from an engine segment.
func VoiceActorFromSegment(episodeID uuid.UUID, s timeline.Segment) EpisodeVoiceActor {
	p, _ := s.Payload.(timeline.VoiceActorPayload)
	return EpisodeVoiceActor{
		ID:               s.ID,
		EpisodeID:        episodeID,
		StartTime:        s.Start,
		EndTime:          s.End,
		PersonID:         p.PersonID,
		Role:             p.Role,
		CharacterName:    p.CharacterName,
		VoiceDescription: p.VoiceDescription,
		IsPrimary:        p.IsPrimary,
	}
}
