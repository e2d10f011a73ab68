package markup

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds the time a single rule may spend backtracking
// over one message.
const DefaultMatchTimeout = 250 * time.Millisecond

// RuleSpec describes a detector before compilation. LineAnchored rules are
// compiled in multi-line mode so ^ and $ match at line boundaries.
type RuleSpec struct {
	Kind         Kind
	Expr         string
	LineAnchored bool
}

// DefaultRules is the detector list in tie-break order. Order never beats
// length during resolution; it only decides between equally long spans.
var DefaultRules = []RuleSpec{
	// A line break must come before the closing fence, which leaves
	// single-line fences to InlineCodeBlock. A fence that closes an earlier
	// fence on the same line never opens a block. The language tag only
	// counts when it ends the opening fence line.
	{Kind: KindCodeBlock, Expr: "(?<!```[^`\\n]*)```(?=(?:(?!```)[\\s\\S])*\\n)(?:[ \\t]*([A-Za-z0-9_+#.-]+)(?=[ \\t]*\\r?\\n))?[ \\t]*\\r?\\n?([\\s\\S]*?)```"},
	{Kind: KindInlineCodeBlock, Expr: "```([^`\\n]+)```"},
	{Kind: KindTable, Expr: `^[^\n]*\|[^\n]*(?:\n[^\n]*\|[^\n]*)*\n?`, LineAnchored: true},
	{Kind: KindNumberedList, Expr: `^[0-9]+\.[ \t]+.+(?:\n[0-9]+\.[ \t]+.+)*`, LineAnchored: true},
	{Kind: KindBulletList, Expr: `^[-*+][ \t]+.+(?:\n[-*+][ \t]+.+)*`, LineAnchored: true},
	{Kind: KindQuote, Expr: `^>[ \t]+.+(?:\n>[ \t]+.+)*`, LineAnchored: true},
	{Kind: KindHeader, Expr: `^(#{1,6})[ \t]+(.+)$`, LineAnchored: true},
	{Kind: KindBold, Expr: `\*\*(.*?)\*\*`},
	{Kind: KindItalic, Expr: `(?<!\*)\*([^*\n]+)\*(?!\*)`},
	{Kind: KindInlineCode, Expr: "`([^`\\n]+)`"},
	{Kind: KindLink, Expr: `https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`},
}

// Rule is a compiled detector.
type Rule struct {
	Kind    Kind
	Pattern *regexp2.Regexp
}

// Catalog is an immutable, ordered list of compiled rules. It is safe for
// concurrent use.
type Catalog struct {
	rules []Rule
}

// NewCatalog compiles specs in order. A malformed pattern or a kind that
// cannot be detected is reported here rather than per message.
func NewCatalog(timeout time.Duration, specs ...RuleSpec) (*Catalog, error) {
	rules := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		if !spec.Kind.Valid() {
			return nil, fmt.Errorf("rule %q: kind %s cannot be detected", spec.Expr, spec.Kind)
		}
		opts := regexp2.None
		if spec.LineAnchored {
			opts |= regexp2.Multiline
		}
		re, err := regexp2.Compile(spec.Expr, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s pattern: %w", spec.Kind, err)
		}
		if timeout > 0 {
			re.MatchTimeout = timeout
		}
		rules = append(rules, Rule{Kind: spec.Kind, Pattern: re})
	}
	return &Catalog{rules: rules}, nil
}

// MustCatalog is like NewCatalog but panics on error. It is meant for
// package-level catalogs built from literal patterns.
func MustCatalog(timeout time.Duration, specs ...RuleSpec) *Catalog {
	c, err := NewCatalog(timeout, specs...)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultCatalog = MustCatalog(DefaultMatchTimeout, DefaultRules...)

// DefaultCatalog returns the catalog built from DefaultRules.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Rules returns a copy of the rules in tie-break order.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Kinds returns the detected kinds in tie-break order.
func (c *Catalog) Kinds() []Kind {
	kinds := make([]Kind, len(c.rules))
	for i, r := range c.rules {
		kinds[i] = r.Kind
	}
	return kinds
}
