package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightCode(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		language  string
		wantColor bool
	}{
		{name: "Go", code: "func main() {}", language: "go", wantColor: true},
		{name: "JavaScript", code: "const x = 42;", language: "js", wantColor: true},
		{name: "Upper case tag", code: "print('x')", language: "Python", wantColor: true},
		{name: "Plain text", code: "const x = 42;", language: "text", wantColor: false},
		{name: "Unknown language", code: "const x = 42;", language: "klingon", wantColor: false},
		{name: "No language", code: "x", language: "", wantColor: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HighlightCode(tt.code, tt.language, DefaultCodeTheme)
			assert.Equal(t, tt.wantColor, strings.Contains(result, "\x1b["), result)
		})
	}
}

func TestHighlightCodeKeepsText(t *testing.T) {
	code := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}"
	result := HighlightCode(code, "go", "monokai")
	assert.Equal(t, code, stripANSI(result))
}

func TestHighlightCodeUnknownTheme(t *testing.T) {
	result := HighlightCode("x := 1", "go", "no-such-theme")
	assert.Contains(t, result, "\x1b[")
}

func TestLanguageColor(t *testing.T) {
	assert.Equal(t, languageColors["go"], LanguageColor("GO"))
	assert.Equal(t, LanguageColor("text"), LanguageColor("cobol"))
}
