package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/sarvcast/sarvcast-backend/timeline"
)

func TestLockIsStablePerEpisodeAndKind(t *testing.T) {
	svc := NewTimelineService(nil)
	episodeA := uuid.New()
	episodeB := uuid.New()

	if svc.lock(episodeA, timeline.KindImage) != svc.lock(episodeA, timeline.KindImage) {
		t.Error("same episode and kind should share one mutex")
	}
	if svc.lock(episodeA, timeline.KindImage) == svc.lock(episodeA, timeline.KindVoiceActor) {
		t.Error("different kinds of the same episode must not share a mutex")
	}
	if svc.lock(episodeA, timeline.KindImage) == svc.lock(episodeB, timeline.KindImage) {
		t.Error("different episodes must not share a mutex")
	}
}
