// Package overlay draws modal boxes on top of the main view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
)

var shadowStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"})

// whitespace fills the gaps left when a background line is shorter than the
// overlay position.
type whitespace struct {
	style lipgloss.Style
	chars string
}

// WhitespaceOption configures the filler drawn around an overlay.
type WhitespaceOption func(*whitespace)

// WithWhitespaceChars sets the characters repeated to fill gaps.
func WithWhitespaceChars(s string) WhitespaceOption {
	return func(w *whitespace) {
		w.chars = s
	}
}

// WithWhitespaceStyle sets the style of the filler.
func WithWhitespaceStyle(s lipgloss.Style) WhitespaceOption {
	return func(w *whitespace) {
		w.style = s
	}
}

func (w whitespace) render(width int) string {
	if width <= 0 {
		return ""
	}
	chars := []rune(w.chars)
	if len(chars) == 0 {
		chars = []rune{' '}
	}
	var b strings.Builder
	for i, filled := 0, 0; filled < width; i++ {
		r := chars[i%len(chars)]
		rw := runewidth.RuneWidth(r)
		if filled+rw > width {
			break
		}
		b.WriteRune(r)
		filled += rw
	}
	if gap := width - ansi.PrintableRuneWidth(b.String()); gap > 0 {
		b.WriteString(strings.Repeat(" ", gap))
	}
	return w.style.Render(b.String())
}

// PlaceOverlay draws fg over bg with its top left corner at column x and
// row y. With center set, x and y are ignored and fg is centred. The
// overlay is clamped so it never leaves the background; if it is larger
// than the background in both directions fg is returned as is.
func PlaceOverlay(x, y int, fg, bg string, shadow, center bool, opts ...WhitespaceOption) string {
	if shadow {
		fg = addShadow(fg)
	}
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)
	fgHeight, bgHeight := len(fgLines), len(bgLines)

	if fgWidth >= bgWidth && fgHeight >= bgHeight {
		return fg
	}

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (bgHeight - fgHeight) / 2
	}
	x = clamp(x, 0, max(bgWidth-fgWidth, 0))
	y = clamp(y, 0, max(bgHeight-fgHeight, 0))

	ws := whitespace{style: lipgloss.NewStyle()}
	for _, opt := range opts {
		opt(&ws)
	}

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+fgHeight {
			b.WriteString(bgLine)
			continue
		}

		pos := 0
		if x > 0 {
			left := truncate.String(bgLine, uint(x))
			pos = ansi.PrintableRuneWidth(left)
			b.WriteString(left)
			if pos < x {
				b.WriteString(ws.render(x - pos))
				pos = x
			}
		}

		fgLine := fgLines[i-y]
		b.WriteString(fgLine)
		pos += ansi.PrintableRuneWidth(fgLine)

		right := cutLeft(bgLine, pos)
		lineWidth := ansi.PrintableRuneWidth(bgLine)
		rightWidth := ansi.PrintableRuneWidth(right)
		if rightWidth <= lineWidth-pos {
			b.WriteString(ws.render(lineWidth - rightWidth - pos))
		}
		b.WriteString(right)
	}
	return b.String()
}

// addShadow puts a one cell shadow on the right and bottom edges of s.
func addShadow(s string) string {
	lines, width := getLines(s)
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(line)
		if pad := width - ansi.PrintableRuneWidth(line); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(shadowStyle.Render("░"))
		}
		b.WriteByte('\n')
	}
	b.WriteString(" ")
	b.WriteString(shadowStyle.Render(strings.Repeat("░", width)))
	return b.String()
}

// cutLeft drops the first cutWidth printable cells of s. Escape sequences
// are kept so styles opened on the left still apply to the rest.
func cutLeft(s string, cutWidth int) string {
	var (
		b      strings.Builder
		inANSI bool
		width  int
	)
	for _, r := range s {
		if r == ansi.Marker {
			inANSI = true
		}
		if inANSI {
			b.WriteRune(r)
			if ansi.IsTerminator(r) {
				inANSI = false
			}
			continue
		}
		if width >= cutWidth {
			b.WriteRune(r)
			continue
		}
		width += runewidth.RuneWidth(r)
		// A wide rune split by the cut leaves a gap.
		if width > cutWidth {
			b.WriteString(strings.Repeat(" ", width-cutWidth))
		}
	}
	return b.String()
}

func getLines(s string) ([]string, int) {
	lines := strings.Split(s, "\n")
	widest := 0
	for _, l := range lines {
		widest = max(widest, ansi.PrintableRuneWidth(l))
	}
	return lines, widest
}

func clamp(v, lower, upper int) int {
	return min(max(v, lower), upper)
}
