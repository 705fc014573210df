package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sarvcast/sarvcast-backend/timeline"
)

// ImageTimeline is one persisted image segment of an episode: the image shown
// between StartTime and EndTime (whole seconds of the audio). Rows are only
// written through TimelineService, which validates the full list and replaces
// it atomically.
type ImageTimeline struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EpisodeID        uuid.UUID `gorm:"type:uuid;not null;index" json:"episode_id"`
	Episode          Episode   `gorm:"constraint:OnDelete:CASCADE;" json:"episode,omitempty"`
	StartTime        int       `gorm:"not null" json:"start_time"`
	EndTime          int       `gorm:"not null" json:"end_time"`
	SortOrder        int       `gorm:"not null;default:1" json:"sort_order"`
	ImageURL         string    `gorm:"type:text;not null" json:"image_url"`
	SceneDescription string    `gorm:"type:text" json:"scene_description"`
	TransitionType   string    `gorm:"type:VARCHAR(20);default:'fade'" json:"transition_type"` // fade | slide | cut
	IsKeyFrame       bool      `gorm:"default:false" json:"is_key_frame"`

	// Optional display grouping: which speaking segment / character this
	// image belongs to. Not validated for existence by the engine.
	VoiceActorSegmentID *uuid.UUID `gorm:"type:uuid" json:"voice_actor_segment_id,omitempty"`
	CharacterID         *uuid.UUID `gorm:"type:uuid" json:"character_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ToSegment converts the row to the engine's segment representation.
func (it ImageTimeline) ToSegment() timeline.Segment {
	return timeline.Segment{
		ID:        it.ID,
		Start:     it.StartTime,
		End:       it.EndTime,
		SortOrder: it.SortOrder,
		Payload: timeline.ImagePayload{
			ImageURL:            it.ImageURL,
			SceneDescription:    it.SceneDescription,
			Transition:          timeline.Transition(it.TransitionType),
			IsKeyFrame:          it.IsKeyFrame,
			VoiceActorSegmentID: it.VoiceActorSegmentID,
			CharacterID:         it.CharacterID,
		},
	}
}

// ImageTimelineFromSegment builds a row for episodeID from an engine segment.
func ImageTimelineFromSegment(episodeID uuid.UUID, s timeline.Segment) ImageTimeline {
	p, _ := s.Payload.(timeline.ImagePayload)
	return ImageTimeline{
		ID:                  s.ID,
		EpisodeID:           episodeID,
		StartTime:           s.Start,
		EndTime:             s.End,
		SortOrder:           s.SortOrder,
		ImageURL:            p.ImageURL,
		SceneDescription:    p.SceneDescription,
		TransitionType:      string(p.Transition),
		IsKeyFrame:          p.IsKeyFrame,
		VoiceActorSegmentID: p.VoiceActorSegmentID,
		CharacterID:         p.CharacterID,
	}
}
