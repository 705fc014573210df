package timeline

import (
	"testing"

	"github.com/google/uuid"
)

func TestOptimizeMergesAdjacentEqualImages(t *testing.T) {
	segments := []Segment{
		img(0, 30, 1, "a.jpg"),
		img(30, 60, 2, "a.jpg"),
		img(60, 90, 3, "b.jpg"),
	}

	got := Optimize(segments)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments after merge, got %d", len(got))
	}
	if got[0].Start != 0 || got[0].End != 60 {
		t.Errorf("merged segment should span [0,60], got [%d,%d]", got[0].Start, got[0].End)
	}
	if got[0].SortOrder != 1 || got[1].SortOrder != 2 {
		t.Errorf("sort orders should be renumbered 1..n, got %d and %d", got[0].SortOrder, got[1].SortOrder)
	}
}

func TestOptimizeMergesChains(t *testing.T) {
	segments := []Segment{
		img(0, 10, 1, "a.jpg"),
		img(10, 20, 2, "a.jpg"),
		img(20, 30, 3, "a.jpg"),
		img(30, 40, 4, "a.jpg"),
	}
	got := Optimize(segments)
	if len(got) != 1 || got[0].Start != 0 || got[0].End != 40 {
		t.Fatalf("expected a single [0,40] segment, got %+v", got)
	}
}

func TestOptimizeKeepsGapsAndDifferentImages(t *testing.T) {
	segments := []Segment{
		img(0, 30, 1, "a.jpg"),
		img(31, 60, 2, "a.jpg"), // gap of one second, must not merge
		img(60, 90, 3, "b.jpg"), // different image, must not merge
	}
	if got := Optimize(segments); len(got) != 3 {
		t.Fatalf("expected no merges, got %d segments", len(got))
	}
}

func TestOptimizeIdempotent(t *testing.T) {
	segments := []Segment{
		img(0, 30, 1, "a.jpg"),
		img(30, 60, 2, "a.jpg"),
		img(60, 90, 3, "b.jpg"),
		img(90, 120, 4, "b.jpg"),
	}
	once := Optimize(segments)
	twice := Optimize(once)
	if len(once) != len(twice) {
		t.Fatalf("optimize is not idempotent: %d vs %d segments", len(once), len(twice))
	}
	for i := range once {
		if once[i].Start != twice[i].Start || once[i].End != twice[i].End {
			t.Errorf("segment %d changed on the second pass: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestOptimizePreservesQueryResults(t *testing.T) {
	segments := []Segment{
		img(0, 30, 1, "a.jpg"),
		img(30, 60, 2, "a.jpg"),
		img(60, 90, 3, "b.jpg"),
	}
	optimized := Optimize(segments)

	for tm := 0; tm <= 90; tm++ {
		before, okBefore := At(segments, tm)
		after, okAfter := At(optimized, tm)
		if okBefore != okAfter {
			t.Fatalf("t=%d: coverage changed after optimize (%v vs %v)", tm, okBefore, okAfter)
		}
		if okBefore && before.Payload.Signature() != after.Payload.Signature() {
			t.Fatalf("t=%d: payload changed after optimize (%s vs %s)", tm, before.Payload.Signature(), after.Payload.Signature())
		}
	}
}

func TestOptimizeVoiceActorSegments(t *testing.T) {
	personX, personY := uuid.New(), uuid.New()
	segments := []Segment{
		actor(0, 60, personX),
		actor(60, 120, personX),
		actor(120, 180, personY),
	}
	got := Optimize(segments)
	if len(got) != 2 {
		t.Fatalf("expected consecutive segments of the same actor to merge, got %d", len(got))
	}
	if got[0].End != 120 {
		t.Errorf("merged actor segment should end at 120, got %d", got[0].End)
	}
	// Voice actor segments carry no sort order.
	if got[0].SortOrder != 0 {
		t.Errorf("voice actor segments should keep a zero sort order, got %d", got[0].SortOrder)
	}
}

func TestOptimizeEmptyInput(t *testing.T) {
	if got := Optimize(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %+v", got)
	}
}
