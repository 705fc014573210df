package timeline

// At returns the segment active at second t. Segment bounds are inclusive on
// both ends, so a timestamp sitting exactly on the boundary shared by two
// adjacent segments matches both; the earlier segment (smaller start time)
// wins so the answer is deterministic. The second return value is false when
// t falls before every segment, after the last one, or inside a gap.
func At(segments []Segment, t int) (Segment, bool) {
	for _, s := range SortByStart(segments) {
		if s.Contains(t) {
			return s, true
		}
		if s.Start > t {
			break
		}
	}
	return Segment{}, false
}

// InRange returns every segment that intersects [from, to], ordered by start
// time. A segment matches when its start falls inside the range, its end
// falls inside the range, or it fully contains the range. All three
// comparisons are inclusive, which keeps segments touching the range only at
// a shared boundary second in the result.
func InRange(segments []Segment, from, to int) []Segment {
	var out []Segment
	for _, s := range SortByStart(segments) {
		startsInside := s.Start >= from && s.Start <= to
		endsInside := s.End >= from && s.End <= to
		containsRange := s.Start <= from && s.End >= to
		if startsInside || endsInside || containsRange {
			out = append(out, s)
		}
	}
	return out
}
