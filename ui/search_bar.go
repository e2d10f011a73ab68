package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SearchBar is the message filter input shown under the header.
type SearchBar struct {
	input   textinput.Model
	results int
	width   int
}

func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search messages..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 200
	return &SearchBar{input: ti}
}

// Focus starts a new search with an empty term.
func (s *SearchBar) Focus() tea.Cmd {
	s.input.SetValue("")
	s.results = 0
	return s.input.Focus()
}

func (s *SearchBar) Blur() {
	s.input.Blur()
}

func (s *SearchBar) Focused() bool {
	return s.input.Focused()
}

// Term is the current search text.
func (s *SearchBar) Term() string {
	return s.input.Value()
}

func (s *SearchBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *SearchBar) SetResultCount(n int) {
	s.results = n
}

func (s *SearchBar) SetWidth(width int) {
	s.width = width
}

// ResultLabel formats a match count.
func ResultLabel(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

func (s *SearchBar) View() string {
	count := ""
	if s.Term() != "" {
		count = lipgloss.NewStyle().Foreground(accentColor).Render(ResultLabel(s.results))
	}
	inner := max(s.width-searchBarStyle.GetHorizontalFrameSize(), 10)
	s.input.Width = max(inner-lipgloss.Width(count)-lipgloss.Width(s.input.Prompt)-2, 5)

	line := s.input.View()
	if count != "" {
		gap := max(inner-lipgloss.Width(line)-lipgloss.Width(count), 1)
		line = line + lipgloss.NewStyle().Width(gap).Render("") + count
	}
	return searchBarStyle.Width(max(s.width, 1)).Render(line)
}
