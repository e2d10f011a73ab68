package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const appTitle = "chatterm"

// HeaderSubtitle describes the conversation length. count is the number of
// stored messages; one exchange is a question and its answer.
func HeaderSubtitle(count int) string {
	if count == 0 {
		return "Start a conversation"
	}
	return fmt.Sprintf("%d messages", count/2)
}

// RenderHeader draws the title bar. status is shown on the right, for
// example the search state.
func RenderHeader(count int, status string, width int) string {
	left := titleStyle.Render(appTitle) + "  " + subtitleStyle.Render(HeaderSubtitle(count))
	inner := max(width-headerStyle.GetHorizontalFrameSize(), 0)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(status)
	line := left
	if gap > 0 && status != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), dimStyle.Render(status))
	}
	return headerStyle.Width(width).Render(line)
}
