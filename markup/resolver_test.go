package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func span(kind Kind, start, end int) Span {
	return Span{Kind: kind, Start: start, End: end}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input []Span
		want  []Span
	}{
		{
			name:  "Empty",
			input: nil,
			want:  []Span{},
		},
		{
			name:  "Disjoint spans are sorted",
			input: []Span{span(KindItalic, 5, 8), span(KindBold, 0, 3)},
			want:  []Span{span(KindBold, 0, 3), span(KindItalic, 5, 8)},
		},
		{
			name:  "Longer span wins",
			input: []Span{span(KindItalic, 2, 5), span(KindCodeBlock, 0, 10)},
			want:  []Span{span(KindCodeBlock, 0, 10)},
		},
		{
			name:  "Equal length keeps catalog order at same start",
			input: []Span{span(KindBold, 0, 5), span(KindItalic, 0, 5)},
			want:  []Span{span(KindBold, 0, 5)},
		},
		{
			name:  "Equal length keeps the earlier start",
			input: []Span{span(KindBold, 3, 8), span(KindItalic, 1, 6)},
			want:  []Span{span(KindItalic, 1, 6)},
		},
		{
			name:  "Touching spans do not overlap",
			input: []Span{span(KindBold, 0, 4), span(KindItalic, 4, 8)},
			want:  []Span{span(KindBold, 0, 4), span(KindItalic, 4, 8)},
		},
		{
			// The middle span loses to the first one but still removes the last.
			name:  "Dropped spans still shadow",
			input: []Span{span(KindTable, 0, 10), span(KindQuote, 8, 14), span(KindItalic, 12, 15)},
			want:  []Span{span(KindTable, 0, 10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.input))
		})
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	input := []Span{span(KindItalic, 5, 8), span(KindBold, 0, 3)}
	Resolve(input)
	assert.Equal(t, []Span{span(KindItalic, 5, 8), span(KindBold, 0, 3)}, input)
}

func TestResolveNoOverlapsInOutput(t *testing.T) {
	input := "**a *b* c** and `x` https://e.com/`y` | z |\n1. **one**"
	resolved := Resolve(DefaultCatalog().Scan(input))
	for i := 1; i < len(resolved); i++ {
		assert.LessOrEqual(t, resolved[i-1].End, resolved[i].Start)
	}
}
