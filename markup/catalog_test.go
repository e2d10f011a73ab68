package markup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogOrder(t *testing.T) {
	assert.Equal(t, []Kind{
		KindCodeBlock,
		KindInlineCodeBlock,
		KindTable,
		KindNumberedList,
		KindBulletList,
		KindQuote,
		KindHeader,
		KindBold,
		KindItalic,
		KindInlineCode,
		KindLink,
	}, DefaultCatalog().Kinds())
}

func TestNewCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		spec RuleSpec
	}{
		{name: "Malformed pattern", spec: RuleSpec{Kind: KindBold, Expr: `(\*\*`}},
		{name: "Plain text kind", spec: RuleSpec{Kind: KindPlainText, Expr: `x`}},
		{name: "Unknown kind", spec: RuleSpec{Kind: Kind(99), Expr: `x`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(time.Second, tt.spec)
			assert.Error(t, err)
		})
	}
}

func TestMustCatalogPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustCatalog(time.Second, RuleSpec{Kind: KindBold, Expr: `[`})
	})
}

func TestCatalogMatchTimeout(t *testing.T) {
	c, err := NewCatalog(42*time.Millisecond, DefaultRules...)
	require.NoError(t, err)
	for _, r := range c.Rules() {
		assert.Equal(t, 42*time.Millisecond, r.Pattern.MatchTimeout)
	}
}

func TestScan(t *testing.T) {
	spans := DefaultCatalog().Scan("**a** *b*")
	require.Len(t, spans, 2)

	assert.Equal(t, KindBold, spans[0].Kind)
	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, 5, spans[0].End)
	text, ok := spans[0].Group(1)
	assert.True(t, ok)
	assert.Equal(t, "a", text)

	assert.Equal(t, KindItalic, spans[1].Kind)
	assert.Equal(t, 6, spans[1].Start)
	assert.Equal(t, 9, spans[1].End)
	assert.Equal(t, "*b*", spans[1].Raw)
}

func TestScanFindsEveryOccurrence(t *testing.T) {
	spans := DefaultCatalog().Scan("`a` `b` `c`")
	require.Len(t, spans, 3)
	for _, s := range spans {
		assert.Equal(t, KindInlineCode, s.Kind)
	}
}

func TestScanLineAnchors(t *testing.T) {
	spans := DefaultCatalog().Scan("intro\n# Title\nnot # a header")
	var headers []Span
	for _, s := range spans {
		if s.Kind == KindHeader {
			headers = append(headers, s)
		}
	}
	require.Len(t, headers, 1)
	assert.Equal(t, "# Title", headers[0].Raw)
}

func TestScanUnmatchedGroup(t *testing.T) {
	spans := DefaultCatalog().Scan("```\nx\n```")
	require.Len(t, spans, 1)
	lang, ok := spans[0].Group(1)
	assert.False(t, ok)
	assert.Empty(t, lang)
	code, ok := spans[0].Group(2)
	assert.True(t, ok)
	assert.Equal(t, "x\n", code)

	_, ok = spans[0].Group(3)
	assert.False(t, ok)
}
