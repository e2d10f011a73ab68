package overlay

import (
	"chatterm/keys"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ActivityOverlay is a full screen, scrollable view of the activity log.
// It opens at the bottom so the most recent entries are visible.
type ActivityOverlay struct {
	// Whether the overlay has been dismissed
	Dismissed bool
	// Callback function to be called when the overlay is dismissed
	OnDismiss func()

	title    string
	viewport viewport.Model
	width    int
	height   int
	helpText string
}

func NewActivityOverlay(title string, content string) *ActivityOverlay {
	a := &ActivityOverlay{
		title:    title,
		viewport: viewport.New(0, 0),
		helpText: "↑/↓ to scroll • esc to close",
	}
	a.viewport.SetContent(content)
	return a
}

// SetContent replaces the log text, keeping the view pinned to the bottom
// when it was there.
func (a *ActivityOverlay) SetContent(content string) {
	atBottom := a.viewport.AtBottom()
	a.viewport.SetContent(content)
	if atBottom {
		a.viewport.GotoBottom()
	}
}

func (a *ActivityOverlay) SetSize(width, height int) {
	a.width = width
	a.height = height

	// border 2, padding 2, title 2, help 2
	a.viewport.Height = max(height-8, 1)
	a.viewport.Width = max(width-4, 1)
	a.viewport.GotoBottom()
}

// HandleKeyPress returns true if the overlay should be closed.
func (a *ActivityOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, keys.Binding(keys.KeyEscape)),
		key.Matches(msg, keys.Binding(keys.KeyActivity)),
		msg.String() == "q":
		a.Dismissed = true
		if a.OnDismiss != nil {
			a.OnDismiss()
		}
		return true
	}
	scroll(&a.viewport, msg)
	return false
}

func (a *ActivityOverlay) Render(opts ...WhitespaceOption) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(borderColor).
		MarginBottom(1)
	helpStyle := lipgloss.NewStyle().
		Foreground(hintColor).
		MarginTop(1)
	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1).
		Width(max(a.width-2, 1)).
		Height(max(a.height-2, 1))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render(a.title),
		a.viewport.View(),
		helpStyle.Render(a.helpText),
	)
	return containerStyle.Render(content)
}

// ScrollPercentage returns the current scroll position as a fraction.
func (a *ActivityOverlay) ScrollPercentage() float64 {
	return a.viewport.ScrollPercent()
}
