package ui

import (
	"fmt"
	"strings"

	"chatterm/chat"

	"github.com/charmbracelet/bubbles/viewport"
)

// ChatPane is the scrollable conversation view. It follows new messages
// unless the user has scrolled away from the bottom.
type ChatPane struct {
	renderer *Renderer
	viewport viewport.Model
	width    int
	height   int

	messages []chat.Message
	// placeholder is shown when there are no messages.
	placeholder string
	loading     bool
	spinner     string
	err         error

	// cache holds rendered bubbles keyed by message ID and width.
	cache       map[string]string
	isScrolling bool
}

func NewChatPane(r *Renderer) *ChatPane {
	if r == nil {
		r = NewRenderer()
	}
	return &ChatPane{
		renderer: r,
		viewport: viewport.New(0, 0),
		cache:    make(map[string]string),
	}
}

// SetSize updates the size of the pane
func (p *ChatPane) SetSize(width, height int) {
	if width != p.width {
		clear(p.cache)
	}
	p.width = width
	p.height = height
	p.viewport.Width = width
	p.viewport.Height = height
	p.refresh()
}

// SetMessages replaces the shown messages.
func (p *ChatPane) SetMessages(messages []chat.Message) {
	if len(messages) == 0 {
		clear(p.cache)
	}
	p.messages = messages
	p.refresh()
}

func (p *ChatPane) SetPlaceholder(s string) {
	p.placeholder = s
	p.refresh()
}

// SetLoading shows or hides the typing indicator. spinner is the current
// spinner frame.
func (p *ChatPane) SetLoading(loading bool, spinner string) {
	p.loading = loading
	p.spinner = spinner
	p.refresh()
}

func (p *ChatPane) SetError(err error) {
	p.err = err
	p.refresh()
}

func (p *ChatPane) ScrollUp() {
	p.isScrolling = true
	p.viewport.LineUp(3)
}

func (p *ChatPane) ScrollDown() {
	p.viewport.LineDown(3)
	p.isScrolling = !p.viewport.AtBottom()
}

func (p *ChatPane) PageUp() {
	p.isScrolling = true
	p.viewport.HalfViewUp()
}

func (p *ChatPane) PageDown() {
	p.viewport.HalfViewDown()
	p.isScrolling = !p.viewport.AtBottom()
}

func (p *ChatPane) GotoTop() {
	p.isScrolling = true
	p.viewport.GotoTop()
}

// GotoBottom jumps to the newest message and resumes following.
func (p *ChatPane) GotoBottom() {
	p.isScrolling = false
	p.viewport.GotoBottom()
}

// Following reports whether the pane sticks to the newest message.
func (p *ChatPane) Following() bool {
	return !p.isScrolling
}

func (p *ChatPane) String() string {
	return p.viewport.View()
}

// refresh rebuilds the content, keeping the scroll position while the user
// is reading older messages.
func (p *ChatPane) refresh() {
	if p.width == 0 {
		return
	}
	yOffset := p.viewport.YOffset
	p.viewport.SetContent(p.render())
	if p.isScrolling {
		p.viewport.SetYOffset(yOffset)
		return
	}
	p.viewport.GotoBottom()
}

func (p *ChatPane) render() string {
	var blocks []string
	for _, m := range p.messages {
		blocks = append(blocks, p.bubble(m))
	}
	if len(p.messages) == 0 && !p.loading && p.err == nil && p.placeholder != "" {
		blocks = append(blocks, p.placeholder)
	}
	if p.loading {
		blocks = append(blocks, TypingIndicator(p.spinner))
	}
	if p.err != nil {
		blocks = append(blocks, RenderErrorBox(p.err, p.width))
	}
	return strings.Join(blocks, "\n\n")
}

func (p *ChatPane) bubble(m chat.Message) string {
	key := fmt.Sprintf("%s/%d", m.ID, p.width)
	if s, ok := p.cache[key]; ok {
		return s
	}
	s := p.renderer.RenderMessage(m, p.width)
	p.cache[key] = s
	return s
}
