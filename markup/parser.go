// Package markup turns chat message text into a flat sequence of typed
// nodes. It recognises a small, fixed set of markdown-like constructs
// (fenced code, tables, lists, quotes, headers, emphasis, inline code and
// bare URLs); anything else is plain text. Parsing never fails.
package markup

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"chatterm/log"
)

// DefaultMaxRunes is the largest input the default parser scans.
const DefaultMaxRunes = 100_000

// Parser scans, resolves and builds in one call. A Parser is immutable and
// may be shared between goroutines.
type Parser struct {
	catalog  *Catalog
	maxRunes int
}

type Option func(*Parser)

// WithCatalog replaces the default rule catalog.
func WithCatalog(c *Catalog) Option {
	return func(p *Parser) {
		if c != nil {
			p.catalog = c
		}
	}
}

// WithMaxRunes sets the input length above which the parser stops looking
// for markup and returns the input as a single plain text node. Zero or a
// negative value removes the limit.
func WithMaxRunes(n int) Option {
	return func(p *Parser) {
		p.maxRunes = n
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		catalog:  DefaultCatalog(),
		maxRunes: DefaultMaxRunes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the nodes for content in source order. Blank content yields
// no nodes.
func (p *Parser) Parse(content string) []Node {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	if n := utf8.RuneCountInString(content); p.maxRunes > 0 && n > p.maxRunes {
		log.WarningLog.Printf("markup: message of %d runes exceeds limit of %d, rendering as plain text", n, p.maxRunes)
		return []Node{PlainText{Pos: Pos{Start: 0, End: n, Raw: content}, Text: content}}
	}
	return Build(content, Resolve(p.catalog.Scan(content)))
}

var defaultParser = NewParser()

// Parse parses content with the default catalog and limits.
func Parse(content string) []Node {
	return defaultParser.Parse(content)
}

type taggedNode struct {
	Kind string `json:"kind"`
	Node Node   `json:"node"`
}

// MarshalNodes encodes nodes as a JSON array of {"kind", "node"} objects.
func MarshalNodes(nodes []Node) ([]byte, error) {
	tagged := make([]taggedNode, len(nodes))
	for i, n := range nodes {
		tagged[i] = taggedNode{Kind: n.Kind().String(), Node: n}
	}
	return json.MarshalIndent(tagged, "", "  ")
}
