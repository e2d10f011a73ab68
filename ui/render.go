package ui

import (
	"fmt"
	"strings"

	"chatterm/config"
	"chatterm/markup"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const minRenderWidth = 20

// Renderer draws message content. The native renderer walks the nodes
// produced by the markup package; the glamour renderer hands the raw text to
// glamour instead.
type Renderer struct {
	parser    *markup.Parser
	codeTheme string
	glamour   bool
	dark      bool
}

type RendererOption func(*Renderer)

func WithParser(p *markup.Parser) RendererOption {
	return func(r *Renderer) {
		if p != nil {
			r.parser = p
		}
	}
}

// WithCodeTheme sets the chroma style for code blocks.
func WithCodeTheme(theme string) RendererOption {
	return func(r *Renderer) {
		if theme != "" {
			r.codeTheme = theme
		}
	}
}

// WithGlamour switches to the glamour renderer.
func WithGlamour(enabled bool) RendererOption {
	return func(r *Renderer) {
		r.glamour = enabled
	}
}

// WithDarkBackground picks the glamour style.
func WithDarkBackground(dark bool) RendererOption {
	return func(r *Renderer) {
		r.dark = dark
	}
}

func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		parser:    markup.NewParser(),
		codeTheme: DefaultCodeTheme,
		dark:      true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRendererFromConfig builds the renderer described by cfg.
func NewRendererFromConfig(cfg *config.Config, dark bool) *Renderer {
	return NewRenderer(
		WithParser(markup.NewParser(markup.WithMaxRunes(cfg.MaxParseRunes))),
		WithCodeTheme(cfg.CodeTheme),
		WithGlamour(cfg.Renderer == config.RendererGlamour),
		WithDarkBackground(dark),
	)
}

// Render draws content to fit width columns.
func (r *Renderer) Render(content string, width int) string {
	if width < minRenderWidth {
		width = minRenderWidth
	}
	if r.glamour {
		rendered, err := RenderMarkdown(content, width, r.dark)
		if err == nil {
			return rendered
		}
	}
	return r.RenderNodes(r.parser.Parse(content), width)
}

// RenderNodes draws nodes in order. Inline nodes are joined into paragraphs
// and wrapped; block nodes start on their own line.
func (r *Renderer) RenderNodes(nodes []markup.Node, width int) string {
	var (
		blocks []string
		inline strings.Builder
	)
	flush := func() {
		text := strings.Trim(inline.String(), "\n")
		inline.Reset()
		if strings.TrimSpace(text) == "" {
			return
		}
		blocks = append(blocks, wordwrap.String(text, width))
	}

	for _, n := range nodes {
		if s, ok := renderInline(n); ok {
			inline.WriteString(s)
			continue
		}
		flush()
		blocks = append(blocks, r.renderBlock(n, width))
	}
	flush()
	return strings.Join(blocks, "\n")
}

// renderInline styles nodes that sit inside a paragraph.
func renderInline(n markup.Node) (string, bool) {
	switch n := n.(type) {
	case markup.PlainText:
		return n.Text, true
	case markup.Bold:
		return boldStyle.Render(n.Text), true
	case markup.Italic:
		return italicStyle.Render(n.Text), true
	case markup.InlineCode:
		return inlineCodeStyle.Render(n.Text), true
	case markup.InlineCodeBlock:
		return inlineCodeStyle.Render(n.Code), true
	case markup.Link:
		return linkStyle.Render(n.Label) + linkArrowStyle.Render(" ↗"), true
	}
	return "", false
}

// renderInlineText parses text and styles its inline markup. Block markup
// inside a list item or table cell is left as written.
func (r *Renderer) renderInlineText(text string) string {
	var b strings.Builder
	for _, n := range r.parser.Parse(text) {
		if s, ok := renderInline(n); ok {
			b.WriteString(s)
		} else {
			b.WriteString(n.Position().Raw)
		}
	}
	return b.String()
}

func (r *Renderer) renderBlock(n markup.Node, width int) string {
	switch n := n.(type) {
	case markup.CodeBlock:
		return r.renderCodeBlock(n.Language, n.Code, width)
	case markup.Table:
		return r.renderTable(n, width)
	case markup.NumberedList:
		return r.renderList(n.Items, width, func(it markup.ListItem) string {
			return listBadgeStyle.Render(fmt.Sprintf("%d.", it.Ordinal))
		})
	case markup.BulletList:
		return r.renderList(n.Items, width, bulletMarker)
	case markup.Quote:
		inner := wordwrap.String(r.renderInlineText(n.Text), width-quoteStyle.GetHorizontalFrameSize())
		return quoteStyle.Render(inner)
	case markup.Header:
		level := n.Level
		if level < 1 || level > len(headerStyles) {
			level = len(headerStyles)
		}
		return headerStyles[level-1].Render(wordwrap.String(n.Text, width))
	}
	return wordwrap.String(n.Position().Raw, width)
}

func bulletMarker(it markup.ListItem) string {
	switch {
	case it.Task && it.Checked:
		return checkedStyle.Render("☑")
	case it.Task:
		return bulletStyle.Render("☐")
	}
	return bulletStyle.Render("•")
}

// renderList hangs wrapped item text under the first line, after the marker.
func (r *Renderer) renderList(items []markup.ListItem, width int, marker func(markup.ListItem) string) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		m := marker(it)
		gutter := lipgloss.Width(m) + 1
		text := r.renderInlineText(it.Text)
		if it.Task && it.Checked {
			text = doneTextStyle.Render(it.Text)
		}
		body := wordwrap.String(text, max(width-gutter, 1))
		first, rest, _ := strings.Cut(body, "\n")
		line := m + " " + first
		if rest != "" {
			line += "\n" + indent.String(rest, uint(gutter))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderCodeBlock(language, code string, width int) string {
	label := lipgloss.NewStyle().Foreground(LanguageColor(language)).Bold(true).Render(language)
	lines := strings.Split(HighlightCode(code, language, r.codeTheme), "\n")
	numWidth := len(fmt.Sprint(len(lines)))

	var body strings.Builder
	for i, line := range lines {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(lineNumberStyle.Render(fmt.Sprintf("%*d", numWidth, i+1)))
		body.WriteString("  ")
		body.WriteString(line)
	}

	box := codeBoxStyle
	if inner := width - box.GetHorizontalFrameSize(); inner > 0 && lipgloss.Width(body.String()) > inner {
		// Long lines are cut rather than wrapped so columns stay aligned.
		box = box.MaxWidth(width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, box.Render(body.String()))
}

func (r *Renderer) renderTable(t markup.Table, width int) string {
	columns := len(t.Headers)
	for _, row := range t.Rows {
		columns = max(columns, len(row))
	}
	pad := func(cells []string) []string {
		out := make([]string, columns)
		for i := range out {
			if i < len(cells) {
				out[i] = r.renderInlineText(cells[i])
			}
		}
		return out
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, pad(row))
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(pad(t.Headers)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	rendered := tbl.String()
	if lipgloss.Width(rendered) > width {
		rendered = tbl.Width(width).String()
	}
	return rendered
}
