package overlay

import (
	"chatterm/keys"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationOverlay asks a yes or no question.
type ConfirmationOverlay struct {
	// Whether the overlay has been dismissed
	Dismissed bool
	// Called when the user confirms
	OnConfirm func()
	// Called when the user cancels
	OnCancel func()

	message string
	width   int
}

func NewConfirmationOverlay(message string) *ConfirmationOverlay {
	return &ConfirmationOverlay{
		message: message,
		width:   50,
	}
}

// HandleKeyPress returns true once the overlay should be closed. Keys other
// than confirm or cancel are ignored.
func (c *ConfirmationOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, keys.Binding(keys.KeyConfirm)):
		c.Dismissed = true
		if c.OnConfirm != nil {
			c.OnConfirm()
		}
		return true
	case key.Matches(msg, keys.Binding(keys.KeyCancel)):
		c.Dismissed = true
		if c.OnCancel != nil {
			c.OnCancel()
		}
		return true
	}
	return false
}

func (c *ConfirmationOverlay) Render(opts ...WhitespaceOption) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}).
		Padding(1, 2).
		Width(c.width)

	confirm := keys.Binding(keys.KeyConfirm).Help()
	cancel := keys.Binding(keys.KeyCancel).Help()
	hint := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).
		Render("Press " + confirm.Key + " to " + confirm.Desc + ", " + cancel.Key + " to " + cancel.Desc)

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, c.message, "", hint))
}

func (c *ConfirmationOverlay) SetWidth(width int) {
	c.width = width
}
