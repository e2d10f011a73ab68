package markup

import (
	"chatterm/log"

	"github.com/dlclark/regexp2"
)

// Scan runs every rule over the whole input and returns one span per match.
// Spans from different rules may overlap; Resolve decides between them. The
// result is grouped by rule in catalog order, and by position within a rule.
func (c *Catalog) Scan(input string) []Span {
	var spans []Span
	for _, rule := range c.rules {
		spans = rule.scan(input, spans)
	}
	return spans
}

// scan appends every match of r in input to spans. A rule that hits its
// match timeout keeps the matches it found before giving up.
func (r Rule) scan(input string, spans []Span) []Span {
	m, err := r.Pattern.FindStringMatch(input)
	for ; m != nil; m, err = r.Pattern.FindNextMatch(m) {
		if m.Length == 0 {
			continue
		}
		spans = append(spans, spanFromMatch(r.Kind, m))
	}
	if err != nil {
		log.WarningLog.Printf("markup: %s scan stopped early: %v", r.Kind, err)
	}
	return spans
}

func spanFromMatch(kind Kind, m *regexp2.Match) Span {
	groups := m.Groups()
	captured := make([]Group, 0, len(groups)-1)
	for _, g := range groups[1:] {
		captured = append(captured, Group{
			Text:    g.String(),
			Matched: len(g.Captures) > 0,
		})
	}
	return Span{
		Kind:   kind,
		Start:  m.Index,
		End:    m.Index + m.Length,
		Groups: captured,
		Raw:    m.String(),
	}
}
