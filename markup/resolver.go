package markup

import "sort"

// Resolve picks a non-overlapping subset of spans, sorted by start.
//
// Spans are first stably sorted by start. A span is dropped when any other
// span it overlaps is strictly longer, or equally long and earlier in the
// sorted order. Because the sort is stable, equally long spans that start
// at the same rune fall back to catalog order. Every span is compared with
// every other one, including spans that are dropped themselves.
func Resolve(spans []Span) []Span {
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	kept := make([]Span, 0, len(sorted))
	for i := range sorted {
		if !shadowed(sorted, i) {
			kept = append(kept, sorted[i])
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Start < kept[j].Start
	})
	return kept
}

// shadowed reports whether spans[i] loses to some overlapping span.
func shadowed(spans []Span, i int) bool {
	s := spans[i]
	for j, other := range spans {
		if j == i || !s.Overlaps(other) {
			continue
		}
		if other.Len() > s.Len() || (other.Len() == s.Len() && j < i) {
			return true
		}
	}
	return false
}
