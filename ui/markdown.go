package ui

import (
	"strings"

	"chatterm/log"
	"chatterm/markup"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown with glamour's dark or light style.
func RenderMarkdown(content string, width int, isDark bool) (string, error) {
	styleName := "dark"
	if !isDark {
		styleName = "light"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styleName),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		log.ErrorLog.Printf("Failed to create markdown renderer with style: %v", err)
		return content, err
	}

	rendered, err := r.Render(content)
	if err != nil {
		log.ErrorLog.Printf("Failed to render markdown with style: %v", err)
		return content, err
	}

	return strings.TrimRight(rendered, "\n"), nil
}

// StripMarkdown removes markup from content, keeping the text. It is used
// for previews and copied text.
func StripMarkdown(content string) string {
	var b strings.Builder
	afterBlock := false
	for _, n := range markup.Parse(content) {
		text, block := plainText(n)
		// At most one line break separates a block from its neighbours.
		needBreak := (block && b.Len() > 0) || (afterBlock && !strings.HasPrefix(text, "\n"))
		if needBreak && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
		b.WriteString(text)
		afterBlock = block
	}
	return strings.TrimSpace(b.String())
}

// plainText returns the text of n without delimiters, and whether n is a
// block that sits on its own lines.
func plainText(n markup.Node) (string, bool) {
	switch n := n.(type) {
	case markup.PlainText:
		return n.Text, false
	case markup.Bold:
		return n.Text, false
	case markup.Italic:
		return n.Text, false
	case markup.InlineCode:
		return n.Text, false
	case markup.InlineCodeBlock:
		return n.Code, false
	case markup.Link:
		return n.URL, false
	case markup.CodeBlock:
		return n.Code, true
	case markup.Quote:
		return n.Text, true
	case markup.Header:
		return n.Text, true
	case markup.NumberedList:
		return joinItems(n.Items), true
	case markup.BulletList:
		return joinItems(n.Items), true
	case markup.Table:
		lines := []string{strings.Join(n.Headers, "\t")}
		for _, row := range n.Rows {
			lines = append(lines, strings.Join(row, "\t"))
		}
		return strings.Join(lines, "\n"), true
	}
	return n.Position().Raw, false
}

func joinItems(items []markup.ListItem) string {
	texts := make([]string, len(items))
	for i, it := range items {
		texts[i] = it.Text
	}
	return strings.Join(texts, "\n")
}
