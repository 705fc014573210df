package timeline

import (
	"fmt"
	"sort"
	"strings"
)

// Violation describes one problem with a submitted segment list. Index is the
// position of the offending segment in the caller's original slice (-1 when
// the problem concerns the list as a whole, e.g. a coverage gap at the end).
type Violation struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ValidationError carries every violation found in a submitted list, so the
// client can show all problems in a single round trip instead of fixing them
// one at a time.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		if v.Index >= 0 {
			msgs[i] = fmt.Sprintf("segment %d: %s", v.Index, v.Reason)
		} else {
			msgs[i] = v.Reason
		}
	}
	return "timeline validation failed: " + strings.Join(msgs, "; ")
}

// Validate checks a complete replacement list for one episode and one kind.
// duration is the episode length in seconds; 0 means unknown, which skips the
// upper-bound and coverage checks. requireCoverage additionally demands that
// the list spans [0, duration] with no gaps (image timelines opt into this).
//
// All violations are collected and returned together as a *ValidationError;
// nil means the list is valid.
func Validate(segments []Segment, duration int, requireCoverage bool) error {
	var violations []Violation

	for i, s := range segments {
		if s.Start < 0 {
			violations = append(violations, Violation{i, fmt.Sprintf("start time %d is negative", s.Start)})
		}
		if s.Start >= s.End {
			violations = append(violations, Violation{i, fmt.Sprintf("start time %d is not before end time %d", s.Start, s.End)})
		}
		if duration > 0 && s.End > duration {
			violations = append(violations, Violation{i, fmt.Sprintf("end time %d exceeds episode duration %d", s.End, duration)})
		}
	}

	violations = append(violations, checkImageOrders(segments)...)

	// Overlap and coverage checks walk the list in time order but report the
	// caller's original indices.
	order := sortedIndices(segments)
	for k := 0; k+1 < len(order); k++ {
		cur, next := segments[order[k]], segments[order[k+1]]
		if cur.End > next.Start {
			violations = append(violations, Violation{
				Index:  order[k+1],
				Reason: fmt.Sprintf("range [%d,%d] overlaps segment %d [%d,%d]", next.Start, next.End, order[k], cur.Start, cur.End),
			})
		}
	}

	if requireCoverage && duration > 0 {
		violations = append(violations, checkCoverage(segments, order, duration)...)
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// ValidateOne checks a single new or edited segment against the already
// stored set. Stored segments were valid when written, so only the candidate's
// own bounds and the overlaps it introduces are checked; coverage is not
// re-validated here. A stored segment with the candidate's ID is ignored so
// that updates do not collide with themselves.
func ValidateOne(candidate Segment, existing []Segment, duration int) error {
	var violations []Violation

	if candidate.Start < 0 {
		violations = append(violations, Violation{0, fmt.Sprintf("start time %d is negative", candidate.Start)})
	}
	if candidate.Start >= candidate.End {
		violations = append(violations, Violation{0, fmt.Sprintf("start time %d is not before end time %d", candidate.Start, candidate.End)})
	}
	if duration > 0 && candidate.End > duration {
		violations = append(violations, Violation{0, fmt.Sprintf("end time %d exceeds episode duration %d", candidate.End, duration)})
	}

	for _, s := range existing {
		if s.ID == candidate.ID {
			continue
		}
		if candidate.Start < s.End && s.Start < candidate.End {
			violations = append(violations, Violation{
				Index:  0,
				Reason: fmt.Sprintf("range [%d,%d] overlaps existing segment [%d,%d]", candidate.Start, candidate.End, s.Start, s.End),
			})
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func checkImageOrders(segments []Segment) []Violation {
	var violations []Violation
	seen := make(map[int]int)
	for i, s := range segments {
		if s.Payload == nil || s.Payload.Kind() != KindImage {
			continue
		}
		if s.SortOrder < 1 {
			violations = append(violations, Violation{i, fmt.Sprintf("sort order %d must be at least 1", s.SortOrder)})
			continue
		}
		if prev, ok := seen[s.SortOrder]; ok {
			violations = append(violations, Violation{i, fmt.Sprintf("sort order %d already used by segment %d", s.SortOrder, prev)})
			continue
		}
		seen[s.SortOrder] = i
	}
	return violations
}

func checkCoverage(segments []Segment, order []int, duration int) []Violation {
	if len(segments) == 0 {
		return []Violation{{-1, fmt.Sprintf("timeline is empty but must cover [0,%d]", duration)}}
	}

	var violations []Violation
	first, last := segments[order[0]], segments[order[len(order)-1]]
	if first.Start != 0 {
		violations = append(violations, Violation{order[0], fmt.Sprintf("timeline must start at 0, first segment starts at %d", first.Start)})
	}
	if last.End != duration {
		violations = append(violations, Violation{order[len(order)-1], fmt.Sprintf("timeline must end at episode duration %d, last segment ends at %d", duration, last.End)})
	}
	for k := 0; k+1 < len(order); k++ {
		cur, next := segments[order[k]], segments[order[k+1]]
		if cur.End < next.Start {
			violations = append(violations, Violation{
				Index:  order[k+1],
				Reason: fmt.Sprintf("gap between %d and %d leaves the timeline uncovered", cur.End, next.Start),
			})
		}
	}
	return violations
}

// sortedIndices returns the positions of segments sorted by start time so
// violations can point back at the submitted order.
func sortedIndices(segments []Segment) []int {
	order := make([]int, len(segments))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if segments[order[a]].Start != segments[order[b]].Start {
			return segments[order[a]].Start < segments[order[b]].Start
		}
		return segments[order[a]].SortOrder < segments[order[b]].SortOrder
	})
	return order
}
