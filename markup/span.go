package markup

// Group is one capture group of a match. Matched is false when the group
// did not participate, which is distinct from matching the empty string.
type Group struct {
	Text    string
	Matched bool
}

// Span is a half-open [Start, End) range over the runes of the input that a
// catalog rule matched.
type Span struct {
	Kind   Kind
	Start  int
	End    int
	Groups []Group
	Raw    string
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether s and o share at least one rune.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && s.End > o.Start
}

// Group returns capture group n (1-based) and whether it participated.
func (s Span) Group(n int) (string, bool) {
	if n < 1 || n > len(s.Groups) {
		return "", false
	}
	g := s.Groups[n-1]
	return g.Text, g.Matched
}

func (s Span) pos() Pos {
	return Pos{Start: s.Start, End: s.End, Raw: s.Raw}
}
