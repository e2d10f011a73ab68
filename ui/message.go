package ui

import (
	"chatterm/chat"

	"github.com/charmbracelet/lipgloss"
)

// bubbleWidthRatio is the share of the pane a message bubble may take.
const bubbleWidthRatio = 0.9

// RenderMessage draws m as a bubble. User messages sit on the right,
// assistant messages on the left.
func (r *Renderer) RenderMessage(m chat.Message, width int) string {
	style, label, align := assistantBubbleStyle, "Assistant", lipgloss.Left
	if m.Role == chat.RoleUser {
		style, label, align = userBubbleStyle, "You", lipgloss.Right
	}

	bubbleWidth := max(int(float64(width)*bubbleWidthRatio), minRenderWidth)
	body := r.Render(m.Content, bubbleWidth-style.GetHorizontalFrameSize())
	meta := roleStyle.Render(label) + " " + timeStyle.Render(m.Timestamp.Format("15:04"))

	bubble := style.Render(lipgloss.JoinVertical(lipgloss.Left, meta, body))
	return lipgloss.PlaceHorizontal(width, align, bubble)
}
