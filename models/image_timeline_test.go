package models

import (
	"testing"

	"github.com/google/uuid"

	"github.com/sarvcast/sarvcast-backend/timeline"
)

func TestImageTimelineSegmentConversionKeepsCrossLinks(t *testing.T) {
	episodeID := uuid.New()
	vaSegmentID := uuid.New()
	characterID := uuid.New()

	seg := timeline.Segment{
		ID:        uuid.New(),
		Start:     10,
		End:       45,
		SortOrder: 3,
		Payload: timeline.ImagePayload{
			ImageURL:            "scenes/forest.jpg",
			SceneDescription:    "the fox enters the forest",
			Transition:          timeline.TransitionSlide,
			IsKeyFrame:          true,
			VoiceActorSegmentID: &vaSegmentID,
			CharacterID:         &characterID,
		},
	}

	row := ImageTimelineFromSegment(episodeID, seg)
	if row.EpisodeID != episodeID || row.StartTime != 10 || row.EndTime != 45 || row.SortOrder != 3 {
		t.Fatalf("row fields mismatch: %+v", row)
	}
	if row.VoiceActorSegmentID == nil || *row.VoiceActorSegmentID != vaSegmentID {
		t.Error("voice actor cross-link was lost")
	}
	if row.CharacterID == nil || *row.CharacterID != characterID {
		t.Error("character cross-link was lost")
	}

	back := row.ToSegment()
	if back.ID != seg.ID || back.Start != seg.Start || back.End != seg.End {
		t.Fatalf("segment fields mismatch after conversion: %+v", back)
	}
	if back.Payload.Signature() != seg.Payload.Signature() {
		t.Errorf("payload signature changed: %s vs %s", back.Payload.Signature(), seg.Payload.Signature())
	}
}

func TestVoiceActorSegmentConversion(t *testing.T) {
	episodeID := uuid.New()
	personID := uuid.New()

	seg := timeline.Segment{
		ID:    uuid.New(),
		Start: 0,
		End:   120,
		Payload: timeline.VoiceActorPayload{
			PersonID:      personID,
			Role:          "character",
			CharacterName: "Golnar",
			IsPrimary:     true,
		},
	}

	row := VoiceActorFromSegment(episodeID, seg)
	if row.PersonID != personID || row.Role != "character" || !row.IsPrimary {
		t.Fatalf("row fields mismatch: %+v", row)
	}

	back := row.ToSegment()
	p, ok := back.Payload.(timeline.VoiceActorPayload)
	if !ok {
		t.Fatalf("expected VoiceActorPayload, got %T", back.Payload)
	}
	if p.PersonID != personID || p.CharacterName != "Golnar" {
		t.Errorf("payload mismatch after conversion: %+v", p)
	}
}
