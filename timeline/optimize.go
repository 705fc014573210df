package timeline

// Optimize coalesces adjacent segments that carry the same payload signature
// (for image segments, the same image) into a single segment spanning both
// ranges, keeping the first segment's metadata. Editors often submit one
// entry per scene even when consecutive scenes reuse an image; merging them
// cuts the stored row count without changing what At returns for any covered
// timestamp. Image segments are renumbered 1..n afterwards so sort orders
// stay unique.
//
// Optimize is idempotent: running it on its own output changes nothing.
func Optimize(segments []Segment) []Segment {
	if len(segments) == 0 {
		return nil
	}

	sorted := SortByStart(segments)
	out := make([]Segment, 0, len(sorted))
	out = append(out, sorted[0])

	for _, next := range sorted[1:] {
		last := &out[len(out)-1]
		if last.End == next.Start && sameSignature(last.Payload, next.Payload) {
			last.End = next.End
			continue
		}
		out = append(out, next)
	}

	for i := range out {
		if out[i].Payload != nil && out[i].Payload.Kind() == KindImage {
			out[i].SortOrder = i + 1
		}
	}
	return out
}

func sameSignature(a, b Payload) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Kind() == b.Kind() && a.Signature() == b.Signature()
}
