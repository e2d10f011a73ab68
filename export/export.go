// Package export writes a conversation out as Markdown or as a standalone
// HTML page.
package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"chatterm/chat"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
)

const headingTimeLayout = "2006-01-02 15:04"

// Markdown renders messages as a transcript: one level 3 heading per
// message naming the role and time, followed by the content as written.
func Markdown(messages []chat.Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "### %s · %s\n\n", m.Role, m.Timestamp.Format(headingTimeLayout))
		b.WriteString(strings.TrimRight(m.Content, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// Raw HTML in messages is escaped, not passed through.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
h3 { color: #6B7280; font-size: 0.9rem; border-top: 1px solid #E5E7EB; padding-top: 1rem; }
pre { background: #1F2937; color: #F9FAFB; padding: 0.75rem; border-radius: 0.5rem; overflow-x: auto; }
code { font-family: ui-monospace, monospace; }
table { border-collapse: collapse; }
th, td { border: 1px solid #D1D5DB; padding: 0.25rem 0.5rem; }
blockquote { border-left: 4px solid #60A5FA; margin-left: 0; padding-left: 1rem; color: #4B5563; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTML converts the Markdown transcript into a complete HTML document.
func HTML(title string, messages []chat.Message) ([]byte, error) {
	var body bytes.Buffer
	if err := engine.Convert([]byte(Markdown(messages)), &body); err != nil {
		return nil, fmt.Errorf("export: failed to convert transcript: %w", err)
	}
	return fmt.Appendf(nil, pageTemplate, html.EscapeString(title), body.String()), nil
}

// Render produces the transcript in format.
func Render(format, title string, messages []chat.Message) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return []byte(Markdown(messages)), nil
	case FormatHTML:
		return HTML(title, messages)
	}
	return nil, fmt.Errorf("export: unknown format %q", format)
}
