package ui

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"chatterm/log"

	"github.com/charmbracelet/lipgloss"
)

// maxActivityEntries bounds the log; the oldest entries are dropped first.
const maxActivityEntries = 500

// ActivityEntry is either an external command or a backend request.
type ActivityEntry struct {
	Timestamp time.Time
	Source    string // Where the activity came from

	Command string
	Args    []string
	Dir     string

	Request *log.Request

	// Count is how many times the entry was seen in distinct mode.
	Count int
}

// ActivityLog collects activity for the activity overlay. It is safe for
// concurrent use; backend requests are reported from command goroutines.
type ActivityLog struct {
	mu           sync.RWMutex
	entries      []ActivityEntry
	showDistinct bool // Collapse repeated commands
	now          func() time.Time
}

func NewActivityLog() *ActivityLog {
	return &ActivityLog{now: time.Now}
}

// AddCommand records an external command.
func (a *ActivityLog) AddCommand(cmd string, args []string, dir string, source string) {
	a.add(ActivityEntry{Command: cmd, Args: args, Dir: dir, Source: source})
}

// AddRequest records a finished backend request.
func (a *ActivityLog) AddRequest(req log.Request, source string) {
	a.add(ActivityEntry{Request: &req, Source: source})
}

func (a *ActivityLog) add(e ActivityEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e.Timestamp = a.now()
	e.Count = 1
	if a.showDistinct {
		key := entryKey(e)
		for i := range a.entries {
			if entryKey(a.entries[i]) == key {
				a.entries[i].Timestamp = e.Timestamp
				a.entries[i].Count++
				return
			}
		}
	}
	a.entries = append(a.entries, e)
	if over := len(a.entries) - maxActivityEntries; over > 0 {
		a.entries = append(a.entries[:0:0], a.entries[over:]...)
	}
}

func (a *ActivityLog) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}

// Entries returns a copy of the entries, oldest first.
func (a *ActivityLog) Entries() []ActivityEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]ActivityEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

func (a *ActivityLog) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = nil
}

// ToggleDistinct switches between listing every entry and listing repeated
// entries once with a count.
func (a *ActivityLog) ToggleDistinct() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.showDistinct = !a.showDistinct
}

var (
	activityTimeStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	activitySourceStyle  = lipgloss.NewStyle().Foreground(highlightColor)
	activityCommandStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	activityCountStyle   = lipgloss.NewStyle().Foreground(successColor)
)

// Render lists the entries, oldest first, so the newest end up at the
// bottom of the overlay.
func (a *ActivityLog) Render() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if len(a.entries) == 0 {
		return dimStyle.Render("No activity yet")
	}

	var b strings.Builder
	if a.showDistinct {
		b.WriteString(lipgloss.NewStyle().Foreground(accentColor).Bold(true).
			Render("[Distinct mode]"))
		b.WriteString("\n\n")
	}

	for i, e := range a.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("%s [%s] %s",
			activityTimeStyle.Render(e.Timestamp.Format("15:04:05")),
			activitySourceStyle.Render(e.Source),
			describe(e),
		)
		if e.Count > 1 {
			line += " " + activityCountStyle.Render(fmt.Sprintf("(×%d)", e.Count))
		}
		if e.Dir != "" {
			line += "\n      " + activityTimeStyle.Render("in") + " " + e.Dir
		}
		b.WriteString(line)
	}
	return b.String()
}

func describe(e ActivityEntry) string {
	if e.Request == nil {
		s := activityCommandStyle.Render(e.Command)
		if len(e.Args) > 0 {
			s += " " + strings.Join(e.Args, " ")
		}
		return s
	}

	r := e.Request
	s := activityCommandStyle.Render(r.Method) + " " + r.URL
	elapsed := r.Elapsed.Round(time.Millisecond)
	switch {
	case r.Err != nil:
		s += " " + lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("failed after %s: %v", elapsed, r.Err))
	case r.Status >= http.StatusBadRequest:
		s += " " + lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("%d in %s", r.Status, elapsed))
	default:
		s += " " + activityCountStyle.Render(fmt.Sprintf("%d in %s", r.Status, elapsed))
	}
	return s
}

func entryKey(e ActivityEntry) string {
	if e.Request != nil {
		return fmt.Sprintf("req|%s|%s|%d", e.Request.Method, e.Request.URL, e.Request.Status)
	}
	return fmt.Sprintf("cmd|%s|%s|%s", e.Command, strings.Join(e.Args, " "), e.Dir)
}
