// Package timeline implements the time-indexed segment engine used for
// episode playback: image timelines and voice actor assignments are both
// stored as lists of [start, end] second ranges, validated for consistency
// and queried by timestamp while an episode plays.
package timeline

import (
	"sort"

	"github.com/google/uuid"
)

// Kind distinguishes the two segment families an episode can carry.
type Kind string

const (
	KindImage      Kind = "image"
	KindVoiceActor Kind = "voice_actor"
)

// Transition is the visual transition used when an image segment becomes active.
type Transition string

const (
	TransitionFade  Transition = "fade"
	TransitionSlide Transition = "slide"
	TransitionCut   Transition = "cut"
)

// Payload is the kind-specific data a segment carries.
// Signature is the merge identity used by Optimize: two adjacent segments
// with equal signatures describe the same content and can be coalesced.
type Payload interface {
	Kind() Kind
	Signature() string
}

// ImagePayload is the payload of an image-timeline segment.
type ImagePayload struct {
	ImageURL            string     `json:"image_url"`
	SceneDescription    string     `json:"scene_description,omitempty"`
	Transition          Transition `json:"transition"`
	IsKeyFrame          bool       `json:"is_key_frame"`
	VoiceActorSegmentID *uuid.UUID `json:"voice_actor_segment_id,omitempty"`
	CharacterID         *uuid.UUID `json:"character_id,omitempty"`
}

func (p ImagePayload) Kind() Kind { return KindImage }

func (p ImagePayload) Signature() string { return "image:" + p.ImageURL }

// VoiceActorPayload is the payload of a voice-actor segment.
type VoiceActorPayload struct {
	PersonID         uuid.UUID `json:"person_id"`
	Role             string    `json:"role"`
	CharacterName    string    `json:"character_name,omitempty"`
	VoiceDescription string    `json:"voice_description,omitempty"`
	IsPrimary        bool      `json:"is_primary"`
}

func (p VoiceActorPayload) Kind() Kind { return KindVoiceActor }

func (p VoiceActorPayload) Signature() string {
	return "voice_actor:" + p.PersonID.String() + ":" + p.Role
}

// Segment is one time range of an episode. Start and End are whole seconds
// from the beginning of the audio. SortOrder is only meaningful for image
// segments, where it must be unique per episode and start at 1.
type Segment struct {
	ID        uuid.UUID `json:"id"`
	Start     int       `json:"start_time"`
	End       int       `json:"end_time"`
	SortOrder int       `json:"sort_order,omitempty"`
	Payload   Payload   `json:"payload"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() int { return s.End - s.Start }

// Contains reports whether t falls inside the segment. Both bounds are
// inclusive; adjacent segments therefore share their boundary second, and
// callers that need a single answer use the tie-break in At.
func (s Segment) Contains(t int) bool { return t >= s.Start && t <= s.End }

// SortByStart returns a copy of segments ordered by start time ascending,
// ties broken by sort order and then by position in the input.
func SortByStart(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	copy(out, segments)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}
