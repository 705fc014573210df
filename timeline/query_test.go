package timeline

import "testing"

func TestAtReturnsActiveSegment(t *testing.T) {
	segments := []Segment{
		img(0, 45, 1, "a.jpg"),
		img(46, 90, 2, "b.jpg"),
	}

	s, ok := At(segments, 20)
	if !ok || s.Payload.(ImagePayload).ImageURL != "a.jpg" {
		t.Fatalf("expected a.jpg at t=20, got %+v ok=%v", s, ok)
	}

	s, ok = At(segments, 46)
	if !ok || s.Payload.(ImagePayload).ImageURL != "b.jpg" {
		t.Fatalf("expected b.jpg at t=46, got %+v ok=%v", s, ok)
	}
}

func TestAtBoundaryTieBreakPrefersEarlierSegment(t *testing.T) {
	segments := []Segment{
		img(10, 20, 2, "b.jpg"),
		img(0, 10, 1, "a.jpg"),
	}

	// Both bounds are inclusive, so t=10 sits in both segments. The earlier
	// one wins regardless of submission order.
	s, ok := At(segments, 10)
	if !ok {
		t.Fatal("expected a segment at t=10")
	}
	if got := s.Payload.(ImagePayload).ImageURL; got != "a.jpg" {
		t.Fatalf("tie-break should return the earlier segment, got %s", got)
	}
}

func TestAtOutsideAllSegments(t *testing.T) {
	segments := []Segment{img(10, 45, 1, "a.jpg"), img(50, 90, 2, "b.jpg")}

	for _, tc := range []int{-1, 5, 47, 91} {
		if _, ok := At(segments, tc); ok {
			t.Errorf("expected no segment at t=%d", tc)
		}
	}
}

func TestAtEmptyList(t *testing.T) {
	if _, ok := At(nil, 0); ok {
		t.Fatal("expected no segment from an empty list")
	}
}

func TestInRangeMatchesByAnyOfThreeConditions(t *testing.T) {
	segments := []Segment{
		img(0, 45, 1, "a.jpg"),
		img(46, 90, 2, "b.jpg"),
	}

	// a.jpg matches because its end (45) falls inside [40,50]; b.jpg because
	// its start (46) does.
	got := InRange(segments, 40, 50)
	if len(got) != 2 {
		t.Fatalf("expected both segments in [40,50], got %d", len(got))
	}
	if got[0].Payload.(ImagePayload).ImageURL != "a.jpg" || got[1].Payload.(ImagePayload).ImageURL != "b.jpg" {
		t.Fatalf("expected ordered [a.jpg b.jpg], got %+v", got)
	}
}

func TestInRangeSegmentContainingRange(t *testing.T) {
	segments := []Segment{img(0, 300, 1, "a.jpg")}
	got := InRange(segments, 100, 110)
	if len(got) != 1 {
		t.Fatalf("segment containing the whole range should match, got %d", len(got))
	}
}

func TestInRangeBoundaryTouch(t *testing.T) {
	segments := []Segment{img(0, 40, 1, "a.jpg")}
	// The segment only touches the range at the shared second 40, which the
	// inclusive comparisons keep in the result.
	if got := InRange(segments, 40, 50); len(got) != 1 {
		t.Fatalf("segment touching the range boundary should match, got %d", len(got))
	}
	if got := InRange(segments, 41, 50); len(got) != 0 {
		t.Fatalf("segment ending before the range should not match, got %d", len(got))
	}
}
