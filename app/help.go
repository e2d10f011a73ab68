package app

import (
	"chatterm/keys"
	"chatterm/ui/overlay"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formattingExample is rendered in the help screen to show what the
// renderer understands.
const formattingExample = "**bold**, *italic*, `code` and https://example.com\n" +
	"## Headers\n" +
	"- [x] task lists\n" +
	"1. numbered lists\n" +
	"> quotes\n" +
	"| tables | too |\n|---|---|\n| a | b |"

// helpLine renders one binding as "key  - description".
func helpLine(name keys.KeyName) string {
	h := keys.Binding(name).Help()
	if h.Key == "" {
		return ""
	}
	return keyStyle.Render(lipgloss.NewStyle().Width(10).Render(h.Key)) + descStyle.Render("- "+h.Desc)
}

func helpSection(title string, names ...keys.KeyName) []string {
	lines := []string{headerStyle.Render(title)}
	for _, n := range names {
		if l := helpLine(n); l != "" {
			lines = append(lines, l)
		}
	}
	return append(lines, "")
}

func (m *home) helpContent(width int) string {
	lines := []string{
		titleStyle.Render("chatterm"),
		"",
		"A terminal chat client. Replies are rendered with code highlighting, tables and lists.",
		"",
	}
	lines = append(lines, helpSection("Conversation:",
		keys.KeySend, keys.KeyNewline, keys.KeyRetry, keys.KeyClear, keys.KeyCopy, keys.KeyOpenLink)...)
	lines = append(lines, helpSection("Navigation:",
		keys.KeySearch, keys.KeyHome, keys.KeyEnd, keys.KeyPageUp, keys.KeyPageDown)...)
	lines = append(lines, helpSection("Other:",
		keys.KeyHelp, keys.KeyActivity, keys.KeyEscape, keys.KeyQuit)...)
	lines = append(lines,
		headerStyle.Render("Formatting:"),
		m.renderer.Render(formattingExample, max(width, 30)),
		"",
		dimStyle.Render("Press 1-3 on an empty conversation to use a suggestion."),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#7D56F4"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#36CFC9"))
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00"))
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#FFFFFF"})
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// showHelpScreen displays the help screen overlay.
func (m *home) showHelpScreen() (tea.Model, tea.Cmd) {
	width, height := int(float32(m.width)*0.6), int(float32(m.height)*0.8)
	m.textOverlay = overlay.NewTextOverlay(m.helpContent(width - 6))
	if m.width > 0 && m.height > 0 {
		m.textOverlay.SetSize(width, height)
	}
	m.state = stateHelp
	return m, nil
}

// handleHelpState handles key events when in help state
func (m *home) handleHelpState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.textOverlay == nil || m.textOverlay.HandleKeyPress(msg) {
		m.state = stateDefault
		m.textOverlay = nil
		return m, tea.WindowSize()
	}
	return m, nil
}
