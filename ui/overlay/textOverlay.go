package overlay

import (
	"chatterm/keys"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	borderColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	hintColor   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

// TextOverlay shows a block of text, such as the help screen. Content that
// does not fit becomes scrollable.
type TextOverlay struct {
	// Whether the overlay has been dismissed
	Dismissed bool
	// Callback function to be called when the overlay is dismissed
	OnDismiss func()

	content  string
	viewport viewport.Model
	width    int
	height   int
	// Whether scrolling is needed
	needsScrolling bool
}

func NewTextOverlay(content string) *TextOverlay {
	t := &TextOverlay{
		content:  content,
		viewport: viewport.New(0, 0),
	}
	t.viewport.SetContent(content)
	return t
}

// HandleKeyPress returns true if the overlay should be closed. Scroll keys
// move the content when it is scrollable; any other key closes it.
func (t *TextOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	if t.needsScrolling && scroll(&t.viewport, msg) {
		return false
	}

	t.Dismissed = true
	if t.OnDismiss != nil {
		t.OnDismiss()
	}
	return true
}

// scroll moves vp for navigation keys and reports whether msg was one.
func scroll(vp *viewport.Model, msg tea.KeyMsg) bool {
	switch {
	case msg.String() == "up" || msg.String() == "k":
		vp.LineUp(1)
	case msg.String() == "down" || msg.String() == "j":
		vp.LineDown(1)
	case key.Matches(msg, keys.Binding(keys.KeyPageUp)):
		vp.HalfViewUp()
	case key.Matches(msg, keys.Binding(keys.KeyPageDown)):
		vp.HalfViewDown()
	case key.Matches(msg, keys.Binding(keys.KeyHome)):
		vp.GotoTop()
	case key.Matches(msg, keys.Binding(keys.KeyEnd)):
		vp.GotoBottom()
	default:
		return false
	}
	return true
}

func (t *TextOverlay) Render(opts ...WhitespaceOption) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2)

	content := t.content
	if t.needsScrolling {
		content = t.viewport.View()
		if t.viewport.TotalLineCount() > t.viewport.Height {
			scrollInfo := lipgloss.NewStyle().
				Foreground(hintColor).
				Render("↑/↓ to scroll • Press any other key to close")
			content = lipgloss.JoinVertical(lipgloss.Left, content, "", scrollInfo)
		}
	}

	if t.width > 0 {
		style = style.Width(t.width)
	}
	return style.Render(content)
}

func (t *TextOverlay) SetWidth(width int) {
	t.width = width
	t.updateViewport()
}

// SetSize updates the dimensions of the overlay
func (t *TextOverlay) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.updateViewport()
}

func (t *TextOverlay) updateViewport() {
	if t.height == 0 || t.width == 0 {
		return
	}

	// 2 border + 2 padding + 2 scroll info
	t.viewport.Height = max(t.height-6, 1)
	t.viewport.Width = max(t.width-6, 1)
	t.needsScrolling = lipgloss.Height(t.content) > t.viewport.Height
}
