package ui

import (
	"chatterm/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	highlightColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	accentColor    = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
	mutedColor     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	errorColor     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	successColor   = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}
	codeBackground = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}
	codeForeground = lipgloss.AdaptiveColor{Light: "#BE185D", Dark: "#F472B6"}
)

// IsDark resolves a dark_mode setting. "auto" asks the terminal.
func IsDark(mode string) bool {
	switch mode {
	case config.DarkModeDark:
		return true
	case config.DarkModeLight:
		return false
	}
	return termenv.HasDarkBackground()
}

// ApplyDarkMode tells lipgloss which side of every AdaptiveColor to use.
func ApplyDarkMode(mode string) bool {
	dark := IsDark(mode)
	lipgloss.SetHasDarkBackground(dark)
	return dark
}

// Styles used when drawing message content.
var (
	boldStyle       = lipgloss.NewStyle().Bold(true)
	italicStyle     = lipgloss.NewStyle().Italic(true)
	inlineCodeStyle = lipgloss.NewStyle().
			Foreground(codeForeground).
			Background(codeBackground)
	linkStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Underline(true)
	linkArrowStyle = lipgloss.NewStyle().Foreground(accentColor)

	headerStyles = [...]lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Underline(true).Foreground(highlightColor),
		lipgloss.NewStyle().Bold(true).Foreground(highlightColor),
		lipgloss.NewStyle().Bold(true).Foreground(accentColor),
		lipgloss.NewStyle().Bold(true),
		lipgloss.NewStyle().Bold(true).Foreground(mutedColor),
		lipgloss.NewStyle().Italic(true).Foreground(mutedColor),
	}

	quoteStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(accentColor).
			Foreground(mutedColor).
			Italic(true).
			PaddingLeft(1)

	listBadgeStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	bulletStyle    = lipgloss.NewStyle().Foreground(highlightColor)
	checkedStyle   = lipgloss.NewStyle().Foreground(successColor)
	doneTextStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(mutedColor)

	codeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)
	lineNumberStyle = lipgloss.NewStyle().Foreground(mutedColor)

	tableBorderStyle = lipgloss.NewStyle().Foreground(mutedColor)
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)

	dimStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// Chat chrome.
var (
	userBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlightColor).
			Padding(0, 1)
	assistantBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(successColor).
				Padding(0, 1)
	roleStyle = lipgloss.NewStyle().Bold(true)
	timeStyle = lipgloss.NewStyle().Foreground(mutedColor)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(highlightColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	headerStyle   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(mutedColor).
			Padding(0, 1)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Foreground(errorColor).
			Padding(0, 1)

	suggestionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)
	searchBarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(accentColor).
			Padding(0, 1)
)
