package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Suggestion is a canned first prompt offered on an empty conversation.
type Suggestion struct {
	Title  string
	Prompt string
}

var Suggestions = []Suggestion{
	{Title: "Creative Writing", Prompt: "Help me write a creative story about space exploration"},
	{Title: "Problem Solving", Prompt: "Explain quantum computing in simple terms"},
	{Title: "Learning", Prompt: "Teach me about sustainable energy sources"},
}

// SuggestionPrompt returns the prompt of the n-th suggestion, counting
// from 1.
func SuggestionPrompt(n int) (string, bool) {
	if n < 1 || n > len(Suggestions) {
		return "", false
	}
	return Suggestions[n-1].Prompt, true
}

// RenderEmptyState draws the welcome text and the numbered suggestions.
// Cards are laid out side by side when they fit and stacked otherwise.
func RenderEmptyState(width, height int) string {
	title := titleStyle.Render("Welcome to " + appTitle)
	intro := subtitleStyle.Render(wordwrap.String(
		"Start a conversation. Ask questions, get creative help, or explore new topics.", max(width-4, 20)))

	cardWidth := 28
	horizontal := width >= len(Suggestions)*(cardWidth+suggestionStyle.GetHorizontalFrameSize()+1)
	if !horizontal {
		cardWidth = max(width-suggestionStyle.GetHorizontalFrameSize()-2, 20)
	}

	cards := make([]string, len(Suggestions))
	for i, s := range Suggestions {
		head := listBadgeStyle.Render(fmt.Sprintf("%d.", i+1)) + " " + boldStyle.Render(s.Title)
		body := dimStyle.Render(wordwrap.String(s.Prompt, cardWidth))
		cards[i] = suggestionStyle.Width(cardWidth + suggestionStyle.GetHorizontalPadding()).
			Render(lipgloss.JoinVertical(lipgloss.Left, head, body))
	}

	var grid string
	if horizontal {
		spaced := make([]string, 0, 2*len(cards))
		for i, c := range cards {
			if i > 0 {
				spaced = append(spaced, " ")
			}
			spaced = append(spaced, c)
		}
		grid = lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
	} else {
		grid = lipgloss.JoinVertical(lipgloss.Left, cards...)
	}

	tip := dimStyle.Render(fmt.Sprintf("Press 1-%d to use a suggestion", len(Suggestions)))
	content := lipgloss.JoinVertical(lipgloss.Center, title, intro, "", grid, "", tip)
	return lipgloss.Place(width, max(height, lipgloss.Height(content)), lipgloss.Center, lipgloss.Center, content)
}
