package ui

import (
	"chatterm/backend"
	"chatterm/keys"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// errorBoxMaxWidth matches the narrow alert the web client shows.
const errorBoxMaxWidth = 60

// RenderErrorBox draws the user facing text for err and the retry key,
// centred in width columns. A nil error renders nothing.
func RenderErrorBox(err error, width int) string {
	if err == nil {
		return ""
	}
	boxWidth := min(width, errorBoxMaxWidth)
	inner := max(boxWidth-errorBoxStyle.GetHorizontalFrameSize(), 1)

	text := wordwrap.String("⚠ "+backend.UserMessage(err), inner)
	hint := dimStyle.Render("Press " + keys.Binding(keys.KeyRetry).Help().Key + " to retry")
	box := errorBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, text, hint))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

// TypingIndicator is shown while a reply is pending. spinner is the current
// spinner frame.
func TypingIndicator(spinner string) string {
	return spinner + " " + dimStyle.Render("Assistant is typing...")
}
