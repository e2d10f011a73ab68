package markup

import (
	"net/url"
	"regexp"
	"strings"
)

const defaultLanguage = "text"

var (
	numberedMarkerRe = regexp.MustCompile(`^[0-9]+\.\s+`)
	bulletMarkerRe   = regexp.MustCompile(`^[-*+]\s+`)
	quoteMarkerRe    = regexp.MustCompile(`^>\s+`)
)

// Build turns resolved spans into nodes. spans must be sorted by start and
// must not overlap, as returned by Resolve. Text between spans becomes a
// PlainText node unless it is blank.
func Build(input string, spans []Span) []Node {
	runes := []rune(input)
	nodes := make([]Node, 0, 2*len(spans)+1)
	cursor := 0
	for _, s := range spans {
		if s.Start > cursor {
			nodes = appendText(nodes, runes, cursor, s.Start)
		}
		nodes = append(nodes, buildNode(s))
		cursor = s.End
	}
	if cursor < len(runes) {
		nodes = appendText(nodes, runes, cursor, len(runes))
	}
	return nodes
}

func appendText(nodes []Node, runes []rune, start, end int) []Node {
	text := string(runes[start:end])
	if strings.TrimSpace(text) == "" {
		return nodes
	}
	return append(nodes, PlainText{
		Pos:  Pos{Start: start, End: end, Raw: text},
		Text: text,
	})
}

func buildNode(s Span) Node {
	switch s.Kind {
	case KindCodeBlock:
		lang, _ := s.Group(1)
		code, _ := s.Group(2)
		return CodeBlock{Pos: s.pos(), Language: languageOrDefault(lang), Code: strings.TrimSpace(code)}
	case KindInlineCodeBlock:
		code, _ := s.Group(1)
		return InlineCodeBlock{Pos: s.pos(), Language: defaultLanguage, Code: strings.TrimSpace(code)}
	case KindTable:
		return buildTable(s)
	case KindNumberedList:
		return NumberedList{Pos: s.pos(), Items: numberedItems(s.Raw)}
	case KindBulletList:
		return BulletList{Pos: s.pos(), Items: bulletItems(s.Raw)}
	case KindQuote:
		return buildQuote(s)
	case KindHeader:
		return buildHeader(s)
	case KindBold:
		text, _ := s.Group(1)
		return Bold{Pos: s.pos(), Text: text}
	case KindItalic:
		text, _ := s.Group(1)
		return Italic{Pos: s.pos(), Text: text}
	case KindInlineCode:
		text, _ := s.Group(1)
		return InlineCode{Pos: s.pos(), Text: text}
	case KindLink:
		return Link{Pos: s.pos(), URL: s.Raw, Label: linkLabel(s.Raw)}
	case KindPlainText:
		return PlainText{Pos: s.pos(), Text: s.Raw}
	}
	// Unknown kinds cannot come out of NewCatalog; degrade rather than fail.
	return PlainText{Pos: s.pos(), Text: s.Raw}
}

func languageOrDefault(lang string) string {
	if lang == "" {
		return defaultLanguage
	}
	return lang
}

// buildTable requires a header line and a separator line containing '-'.
// Anything else is returned as plain text, unchanged.
func buildTable(s Span) Node {
	lines := nonBlankLines(strings.TrimSpace(s.Raw))
	if len(lines) < 2 || !strings.Contains(lines[1], "-") {
		return PlainText{Pos: s.pos(), Text: s.Raw}
	}
	rows := make([][]string, 0, len(lines)-2)
	for _, line := range lines[2:] {
		rows = append(rows, splitRow(line))
	}
	return Table{Pos: s.pos(), Headers: splitRow(lines[0]), Rows: rows}
}

func splitRow(line string) []string {
	var cells []string
	for _, cell := range strings.Split(line, "|") {
		if cell = strings.TrimSpace(cell); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

func numberedItems(block string) []ListItem {
	lines := nonBlankLines(block)
	items := make([]ListItem, 0, len(lines))
	for i, line := range lines {
		items = append(items, ListItem{
			Ordinal: i + 1,
			Text:    numberedMarkerRe.ReplaceAllString(line, ""),
		})
	}
	return items
}

func bulletItems(block string) []ListItem {
	lines := nonBlankLines(block)
	items := make([]ListItem, 0, len(lines))
	for i, line := range lines {
		item := ListItem{Ordinal: i + 1, Text: bulletMarkerRe.ReplaceAllString(line, "")}
		switch {
		case strings.HasPrefix(item.Text, "[x]"), strings.HasPrefix(item.Text, "[X]"):
			item.Task, item.Checked = true, true
		case strings.HasPrefix(item.Text, "[ ]"):
			item.Task = true
		}
		if item.Task {
			item.Text = strings.TrimSpace(item.Text[3:])
		}
		items = append(items, item)
	}
	return items
}

func buildQuote(s Span) Node {
	lines := strings.Split(s.Raw, "\n")
	for i, line := range lines {
		lines[i] = quoteMarkerRe.ReplaceAllString(strings.TrimRight(line, "\r"), "")
	}
	return Quote{Pos: s.pos(), Text: strings.TrimSpace(strings.Join(lines, "\n"))}
}

func buildHeader(s Span) Node {
	marker, _ := s.Group(1)
	level := len(marker)
	if level < 1 {
		level = 1
	} else if level > 6 {
		level = 6
	}
	// The pattern guarantees a space or tab right after the marker.
	text := s.Raw[len(marker)+1:]
	return Header{Pos: s.pos(), Level: level, Text: strings.TrimRight(text, "\r")}
}

func linkLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}

// nonBlankLines splits on '\n', drops blank lines and trailing '\r'.
func nonBlankLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
