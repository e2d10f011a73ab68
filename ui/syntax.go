package ui

import (
	"strings"

	"chatterm/log"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
)

const DefaultCodeTheme = "dracula"

// languageColors labels code blocks by language.
var languageColors = map[string]lipgloss.Color{
	"javascript": "178",
	"js":         "178",
	"typescript": "33",
	"ts":         "33",
	"python":     "34",
	"py":         "34",
	"html":       "208",
	"css":        "135",
	"json":       "245",
	"bash":       "250",
	"shell":      "250",
	"sql":        "62",
	"java":       "160",
	"cpp":        "25",
	"c++":        "25",
	"c":          "26",
	"php":        "91",
	"ruby":       "167",
	"go":         "37",
	"rust":       "166",
	"swift":      "209",
	"kotlin":     "141",
}

// LanguageColor returns the label color for lang.
func LanguageColor(lang string) lipgloss.Color {
	if c, ok := languageColors[strings.ToLower(lang)]; ok {
		return c
	}
	return "245"
}

func lexerFor(language string) chroma.Lexer {
	lang := strings.ToLower(language)
	if lang == "" || lang == "text" || lang == "plaintext" {
		return nil
	}
	return lexers.Get(lang)
}

// HighlightCode colors code for a 256-color terminal using the named
// chroma style. Code in a language chroma does not know is returned as is.
func HighlightCode(code, language, theme string) string {
	lexer := lexerFor(language)
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		log.WarningLog.Printf("failed to tokenise %s code: %v", language, err)
		return code
	}
	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		log.WarningLog.Printf("failed to highlight %s code: %v", language, err)
		return code
	}
	return trimAddedNewline(b.String(), code)
}

// trimAddedNewline drops the line break some lexers append to their input,
// along with the escape codes around it.
func trimAddedNewline(out, code string) string {
	if strings.HasSuffix(code, "\n") {
		return out
	}
	i := strings.LastIndex(out, "\n")
	if i < 0 || stripANSI(out[i+1:]) != "" {
		return out
	}
	return out[:i] + out[i+1:]
}

// stripANSI removes escape sequences from s.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == ansi.Marker:
			inEscape = true
		case inEscape:
			inEscape = !ansi.IsTerminator(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
