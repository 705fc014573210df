package timeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func img(start, end, order int, url string) Segment {
	return Segment{
		ID:        uuid.New(),
		Start:     start,
		End:       end,
		SortOrder: order,
		Payload:   ImagePayload{ImageURL: url, Transition: TransitionFade},
	}
}

func actor(start, end int, personID uuid.UUID) Segment {
	return Segment{
		ID:      uuid.New(),
		Start:   start,
		End:     end,
		Payload: VoiceActorPayload{PersonID: personID, Role: "narrator"},
	}
}

func asValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	return verr
}

func TestValidateAcceptsAdjacentSegments(t *testing.T) {
	segments := []Segment{
		img(0, 100, 1, "a.jpg"),
		img(100, 200, 2, "b.jpg"),
		img(200, 300, 3, "c.jpg"),
	}
	if err := Validate(segments, 300, true); err != nil {
		t.Fatalf("expected valid timeline, got: %v", err)
	}
}

func TestValidateRejectsOverlap(t *testing.T) {
	x, y := uuid.New(), uuid.New()
	segments := []Segment{
		actor(0, 120, x),
		actor(60, 180, y),
	}
	verr := asValidationError(t, Validate(segments, 180, false))
	if len(verr.Violations) != 1 {
		t.Fatalf("expected exactly one violation, got %d: %v", len(verr.Violations), verr.Violations)
	}
	v := verr.Violations[0]
	if v.Index != 1 {
		t.Errorf("violation should identify the second segment, got index %d", v.Index)
	}
	if !strings.Contains(v.Reason, "overlap") {
		t.Errorf("violation should mention the overlap, got %q", v.Reason)
	}
}

func TestValidateRejectsInvertedAndNegativeBounds(t *testing.T) {
	segments := []Segment{
		img(-5, 10, 1, "a.jpg"),
		img(30, 30, 2, "b.jpg"),
		img(50, 40, 3, "c.jpg"),
	}
	verr := asValidationError(t, Validate(segments, 0, false))
	// negative start, zero length, inverted range
	if len(verr.Violations) != 3 {
		t.Fatalf("expected 3 violations, got %d: %v", len(verr.Violations), verr.Violations)
	}
}

func TestValidateRejectsEndBeyondDuration(t *testing.T) {
	segments := []Segment{img(0, 400, 1, "a.jpg")}
	verr := asValidationError(t, Validate(segments, 300, false))
	if len(verr.Violations) != 1 || !strings.Contains(verr.Violations[0].Reason, "duration") {
		t.Fatalf("expected a duration violation, got %v", verr.Violations)
	}
	if err := Validate(segments, 0, false); err != nil {
		t.Fatalf("unknown duration should skip the upper bound check, got: %v", err)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	segments := []Segment{
		img(-1, 50, 1, "a.jpg"),
		img(40, 90, 1, "b.jpg"),
		img(500, 600, 2, "c.jpg"),
	}
	verr := asValidationError(t, Validate(segments, 300, false))
	// negative start, duplicate sort order, end beyond duration, overlap
	if len(verr.Violations) != 4 {
		t.Fatalf("expected 4 violations reported together, got %d: %v", len(verr.Violations), verr.Violations)
	}
}

func TestValidateCoveragePolicy(t *testing.T) {
	full := []Segment{
		img(0, 100, 1, "a.jpg"),
		img(100, 200, 2, "b.jpg"),
		img(200, 300, 3, "c.jpg"),
	}
	if err := Validate(full, 300, true); err != nil {
		t.Fatalf("full coverage should pass, got: %v", err)
	}

	truncated := full[:2]
	verr := asValidationError(t, Validate(truncated, 300, true))
	if len(verr.Violations) != 1 {
		t.Fatalf("expected one violation, got %v", verr.Violations)
	}
	if !strings.Contains(verr.Violations[0].Reason, "300") {
		t.Errorf("violation should cite the missing coverage up to 300, got %q", verr.Violations[0].Reason)
	}
}

func TestValidateCoverageRejectsGap(t *testing.T) {
	// One second missing between 45 and 46.
	segments := []Segment{
		img(0, 45, 1, "a.jpg"),
		img(46, 90, 2, "b.jpg"),
	}
	verr := asValidationError(t, Validate(segments, 90, true))
	found := false
	for _, v := range verr.Violations {
		if strings.Contains(v.Reason, "gap") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a gap violation, got %v", verr.Violations)
	}

	// Without the coverage policy the same list is fine.
	if err := Validate(segments, 90, false); err != nil {
		t.Fatalf("gap should be allowed without coverage policy, got: %v", err)
	}
}

func TestValidateCoverageRejectsEmptyList(t *testing.T) {
	verr := asValidationError(t, Validate(nil, 120, true))
	if len(verr.Violations) != 1 || verr.Violations[0].Index != -1 {
		t.Fatalf("expected one whole-list violation, got %v", verr.Violations)
	}
}

func TestValidateEmptyListWithoutCoverage(t *testing.T) {
	if err := Validate(nil, 120, false); err != nil {
		t.Fatalf("empty list without coverage policy should pass, got: %v", err)
	}
}

func TestValidateOneAgainstExisting(t *testing.T) {
	personX, personY := uuid.New(), uuid.New()
	existing := []Segment{actor(0, 120, personX)}

	overlapping := actor(60, 180, personY)
	verr := asValidationError(t, ValidateOne(overlapping, existing, 300))
	if len(verr.Violations) != 1 || !strings.Contains(verr.Violations[0].Reason, "overlap") {
		t.Fatalf("expected an overlap violation, got %v", verr.Violations)
	}

	adjacent := actor(120, 180, personY)
	if err := ValidateOne(adjacent, existing, 300); err != nil {
		t.Fatalf("adjacent segment should be accepted, got: %v", err)
	}
}

func TestValidateOneSkipsItselfOnUpdate(t *testing.T) {
	personX := uuid.New()
	stored := actor(0, 120, personX)
	existing := []Segment{stored}

	updated := stored
	updated.End = 150
	if err := ValidateOne(updated, existing, 300); err != nil {
		t.Fatalf("updating a segment should not collide with its own stored row, got: %v", err)
	}
}

func TestValidationErrorMessageListsEveryProblem(t *testing.T) {
	segments := []Segment{
		img(-1, 50, 1, "a.jpg"),
		img(40, 90, 2, "b.jpg"),
	}
	err := Validate(segments, 300, false)
	msg := err.Error()
	if !strings.Contains(msg, "negative") || !strings.Contains(msg, "overlap") {
		t.Fatalf("error message should mention every violation, got %q", msg)
	}
}
