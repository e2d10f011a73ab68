package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"chatterm/backend"
	"chatterm/chat"
	"chatterm/config"
	"chatterm/keys"
	"chatterm/log"
	"chatterm/markup"
	"chatterm/store"
	"chatterm/ui"
	"chatterm/ui/overlay"
	"chatterm/util"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// statusDuration is how long a status notice stays in the footer.
const statusDuration = 3 * time.Second

const copyPreviewWidth = 40

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config) error {
	if err := keys.InitializeCustomKeyBindings(); err != nil {
		// Log error but continue with defaults
		log.ErrorLog.Printf("Failed to load custom keybindings: %v", err)
	}

	dir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	kv, closeKV, err := store.Open(ctx, cfg.StorageBackend, dir)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer func() {
		if err := closeKV(); err != nil {
			log.WarningLog.Printf("failed to close history store: %v", err)
		}
	}()

	activity := ui.NewActivityLog()
	log.SetActivityLogger(NewActivityAdapter(activity))
	defer log.SetActivityLogger(nil)

	client := backend.New(cfg.APIBaseURL, backend.WithTimeout(cfg.RequestTimeout()))
	session := chat.NewSession(ctx, client, store.NewHistory[chat.Message](kv),
		chat.WithFuzzySearch(cfg.FuzzySearch))
	renderer := ui.NewRendererFromConfig(cfg, ui.ApplyDarkMode(cfg.DarkMode))

	p := tea.NewProgram(
		newHome(ctx, session, renderer, activity),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse scroll
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type state int

const (
	stateDefault state = iota
	// stateSearch is the state when the search bar has focus.
	stateSearch
	// stateHelp is the state when a help screen is displayed.
	stateHelp
	// stateConfirm is the state when a confirmation modal is displayed.
	stateConfirm
	// stateActivity is the state when the activity log is displayed.
	stateActivity
)

type home struct {
	ctx context.Context

	session  *chat.Session
	renderer *ui.Renderer
	activity *ui.ActivityLog

	// -- State --

	// state is the current discrete state of the application
	state state
	// pendingCmd stores a command to be executed after confirmation
	pendingCmd tea.Cmd
	// status is a short notice shown in the footer, such as "Copied".
	status string

	width  int
	height int

	// -- UI Components --

	chatPane  *ui.ChatPane
	searchBar *ui.SearchBar
	input     textarea.Model
	// global spinner instance, shown while a reply is pending
	spinner spinner.Model
	help    help.Model

	textOverlay         *overlay.TextOverlay
	confirmationOverlay *overlay.ConfirmationOverlay
	activityOverlay     *overlay.ActivityOverlay
}

func newHome(ctx context.Context, session *chat.Session, renderer *ui.Renderer, activity *ui.ActivityLog) *home {
	input := textarea.New()
	input.Placeholder = "Type your message..."
	input.ShowLineNumbers = false
	input.Prompt = ""
	input.SetHeight(3)
	input.CharLimit = 0
	// Enter sends; new lines come from the newline binding.
	input.KeyMap.InsertNewline.SetEnabled(false)
	input.Focus()

	if activity == nil {
		activity = ui.NewActivityLog()
	}

	h := &home{
		ctx:       ctx,
		session:   session,
		renderer:  renderer,
		activity:  activity,
		state:     stateDefault,
		chatPane:  ui.NewChatPane(renderer),
		searchBar: ui.NewSearchBar(),
		input:     input,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
	}
	h.syncChat()
	return h
}

var inputStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"})

const (
	headerHeight    = 2
	searchBarHeight = 2
	footerHeight    = 1
)

// updateHandleWindowSizeEvent sets the sizes of the components.
// The components will try to render inside their bounds.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height

	m.input.SetWidth(max(msg.Width-inputStyle.GetHorizontalFrameSize(), 1))
	m.searchBar.SetWidth(msg.Width)
	m.help.Width = msg.Width

	m.resizeChatPane()

	if m.textOverlay != nil {
		m.textOverlay.SetSize(int(float32(msg.Width)*0.6), int(float32(msg.Height)*0.8))
	}
	if m.activityOverlay != nil {
		m.activityOverlay.SetSize(int(float32(msg.Width)*0.9), int(float32(msg.Height)*0.9))
	}
}

func (m *home) resizeChatPane() {
	m.chatPane.SetSize(m.width, m.chatPaneHeight())
	m.syncChat()
}

func (m *home) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textarea.Blink)
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hideStatusMsg:
		m.status = ""
		return m, nil
	case replyMsg:
		m.syncChat()
		m.refreshActivity()
		return m, nil
	case clearedMsg:
		if msg.err != nil {
			log.ErrorLog.Printf("failed to clear history: %v", msg.err)
		}
		m.chatPane.GotoBottom()
		m.syncChat()
		return m, m.setStatus("Conversation cleared")
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.session.Loading() {
			m.chatPane.SetLoading(true, m.spinner.View())
		}
		return m, cmd
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.chatPane.ScrollUp()
			case tea.MouseButtonWheelDown:
				m.chatPane.ScrollDown()
			}
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Binding(keys.KeyQuit)) {
		return m, tea.Quit
	}

	switch m.state {
	case stateHelp:
		return m.handleHelpState(msg)
	case stateConfirm:
		return m.handleConfirmState(msg)
	case stateActivity:
		return m.handleActivityState(msg)
	case stateSearch:
		return m.handleSearchState(msg)
	}

	if cmd, ok := m.handleSuggestionKey(msg); ok {
		return m, cmd
	}

	name, ok := keys.GetKeyName(msg.String())
	if !ok {
		return m.updateInput(msg)
	}

	switch name {
	case keys.KeySend:
		return m, m.send(m.input.Value())
	case keys.KeyNewline:
		m.input.InsertString("\n")
		return m, nil
	case keys.KeyRetry:
		return m, m.retry()
	case keys.KeyClear:
		if len(m.session.Messages()) == 0 {
			return m, nil
		}
		return m, m.confirmAction("Clear the conversation? This cannot be undone.", m.clearCmd())
	case keys.KeyCopy:
		return m, m.copyLastReply()
	case keys.KeyOpenLink:
		return m, m.openLastLink()
	case keys.KeySearch:
		m.state = stateSearch
		m.input.Blur()
		cmd := m.searchBar.Focus()
		m.resizeChatPane()
		return m, cmd
	case keys.KeyHome:
		m.chatPane.GotoTop()
	case keys.KeyEnd:
		m.chatPane.GotoBottom()
	case keys.KeyPageUp:
		m.chatPane.PageUp()
	case keys.KeyPageDown:
		m.chatPane.PageDown()
	case keys.KeyHelp:
		// ? is an ordinary character once the user has started typing.
		if m.input.Value() != "" {
			return m.updateInput(msg)
		}
		return m.showHelpScreen()
	case keys.KeyActivity:
		return m.showActivity()
	default:
		return m.updateInput(msg)
	}
	return m, nil
}

func (m *home) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSuggestionKey sends a suggested prompt when a digit is pressed on
// an empty conversation.
func (m *home) handleSuggestionKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 || m.input.Value() != "" ||
		len(m.session.Messages()) > 0 || m.session.Loading() {
		return nil, false
	}
	prompt, ok := ui.SuggestionPrompt(int(msg.Runes[0] - '0'))
	if !ok {
		return nil, false
	}
	return m.send(prompt), true
}

// send starts a request for content. The reply arrives as a replyMsg.
func (m *home) send(content string) tea.Cmd {
	if m.session.Loading() {
		return nil
	}
	query, ok := m.session.Begin(m.ctx, content)
	if !ok {
		return nil
	}
	m.input.Reset()
	m.chatPane.GotoBottom()
	m.syncChat()
	return m.replyCmd(query)
}

func (m *home) retry() tea.Cmd {
	if m.session.Loading() || m.session.Err() == nil {
		return nil
	}
	query, ok := m.session.BeginRetry(m.ctx)
	if !ok {
		return nil
	}
	m.chatPane.GotoBottom()
	m.syncChat()
	return m.replyCmd(query)
}

func (m *home) replyCmd(query string) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		return replyMsg{err: session.Reply(ctx, query)}
	}
}

func (m *home) clearCmd() tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		return clearedMsg{err: session.Clear(ctx)}
	}
}

// lastReply returns the newest assistant message.
func (m *home) lastReply() (chat.Message, bool) {
	messages := m.session.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == chat.RoleAssistant {
			return messages[i], true
		}
	}
	return chat.Message{}, false
}

func (m *home) copyLastReply() tea.Cmd {
	reply, ok := m.lastReply()
	if !ok {
		return m.setStatus("Nothing to copy")
	}
	if err := clipboard.WriteAll(reply.Content); err != nil {
		log.ErrorLog.Printf("failed to copy to clipboard: %v", err)
		return m.setStatus("Copy failed")
	}
	return m.setStatus(copiedStatus(reply.Content))
}

// copiedStatus confirms a copy with a one-line plain-text preview.
func copiedStatus(content string) string {
	preview := strings.Join(strings.Fields(ui.StripMarkdown(content)), " ")
	if preview == "" {
		return "Copied to clipboard"
	}
	return "Copied: " + truncate.StringWithTail(preview, copyPreviewWidth, "…")
}

// lastLink finds the newest URL in the conversation.
func lastLink(messages []chat.Message) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		nodes := markup.Parse(messages[i].Content)
		for j := len(nodes) - 1; j >= 0; j-- {
			if link, ok := nodes[j].(markup.Link); ok {
				return link.URL, true
			}
		}
	}
	return "", false
}

func (m *home) openLastLink() tea.Cmd {
	url, ok := lastLink(m.session.Messages())
	if !ok {
		return m.setStatus("No link to open")
	}
	if err := util.OpenURL(url); err != nil {
		log.ErrorLog.Printf("failed to open %s: %v", url, err)
		return m.setStatus("Could not open link")
	}
	m.refreshActivity()
	return m.setStatus("Opened " + url)
}

// setStatus shows a notice and returns a command that hides it again.
func (m *home) setStatus(s string) tea.Cmd {
	m.status = s
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
		case <-time.After(statusDuration):
		}
		return hideStatusMsg{}
	}
}

func (m *home) handleSearchState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Binding(keys.KeyEscape)) || key.Matches(msg, keys.Binding(keys.KeySearch)) {
		m.state = stateDefault
		m.searchBar.Blur()
		cmd := m.input.Focus()
		m.chatPane.GotoBottom()
		m.resizeChatPane()
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Binding(keys.KeyPageUp)):
		m.chatPane.PageUp()
		return m, nil
	case key.Matches(msg, keys.Binding(keys.KeyPageDown)):
		m.chatPane.PageDown()
		return m, nil
	}

	cmd := m.searchBar.Update(msg)
	m.syncChat()
	return m, cmd
}

// syncChat copies the session state into the chat pane. While searching
// only matching messages are shown.
func (m *home) syncChat() {
	messages := m.session.Messages()
	placeholder := ui.RenderEmptyState(m.width, m.chatPaneHeight())
	if m.state == stateSearch {
		if term := m.searchBar.Term(); term != "" {
			messages = m.session.Filter(term)
			m.searchBar.SetResultCount(len(messages))
			placeholder = "No messages match " + fmt.Sprintf("%q", term)
		}
	}
	m.chatPane.SetPlaceholder(placeholder)
	m.chatPane.SetMessages(messages)
	m.chatPane.SetLoading(m.session.Loading(), m.spinner.View())
	m.chatPane.SetError(m.session.Err())
}

func (m *home) chatPaneHeight() int {
	used := headerHeight + footerHeight + m.input.Height() + inputStyle.GetVerticalFrameSize()
	if m.state == stateSearch {
		used += searchBarHeight
	}
	return max(m.height-used, 1)
}

// confirmAction shows a confirmation modal and stores the action to execute on confirm
func (m *home) confirmAction(message string, action tea.Cmd) tea.Cmd {
	m.state = stateConfirm

	m.confirmationOverlay = overlay.NewConfirmationOverlay(message)
	// Set a fixed width for consistent appearance
	m.confirmationOverlay.SetWidth(50)

	m.pendingCmd = action

	m.confirmationOverlay.OnConfirm = func() {
		m.state = stateDefault
	}
	m.confirmationOverlay.OnCancel = func() {
		m.state = stateDefault
		m.pendingCmd = nil
	}
	return nil
}

func (m *home) handleConfirmState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmationOverlay == nil {
		m.state = stateDefault
		return m, nil
	}
	if !m.confirmationOverlay.HandleKeyPress(msg) {
		return m, nil
	}
	cmd := m.pendingCmd
	m.pendingCmd = nil
	m.confirmationOverlay = nil
	return m, cmd
}

// showActivity opens the activity log overlay.
func (m *home) showActivity() (tea.Model, tea.Cmd) {
	m.activityOverlay = overlay.NewActivityOverlay("Activity", m.activity.Render())
	m.activityOverlay.OnDismiss = func() {
		m.state = stateDefault
		m.activityOverlay = nil
	}
	if m.width > 0 && m.height > 0 {
		m.activityOverlay.SetSize(int(float32(m.width)*0.9), int(float32(m.height)*0.9))
	}
	m.state = stateActivity
	return m, nil
}

func (m *home) handleActivityState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.activityOverlay == nil {
		m.state = stateDefault
		return m, nil
	}
	if msg.String() == "u" {
		m.activity.ToggleDistinct()
		m.refreshActivity()
		return m, nil
	}
	m.activityOverlay.HandleKeyPress(msg)
	return m, nil
}

func (m *home) refreshActivity() {
	if m.activityOverlay != nil {
		m.activityOverlay.SetContent(m.activity.Render())
	}
}

func (m *home) footer() string {
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return m.help.ShortHelpView(keys.Bindings(
		keys.KeySend, keys.KeyNewline, keys.KeySearch, keys.KeyClear, keys.KeyCopy, keys.KeyHelp, keys.KeyQuit,
	))
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"})

func (m *home) View() string {
	status := ""
	if m.session.Loading() {
		status = "waiting for reply"
	}
	parts := []string{ui.RenderHeader(len(m.session.Messages()), status, m.width)}
	if m.state == stateSearch {
		parts = append(parts, m.searchBar.View())
	}
	parts = append(parts,
		m.chatPane.String(),
		inputStyle.Render(m.input.View()),
		m.footer(),
	)
	mainView := lipgloss.JoinVertical(lipgloss.Left, parts...)

	switch m.state {
	case stateHelp:
		if m.textOverlay == nil {
			log.ErrorLog.Printf("text overlay is nil")
			m.state = stateDefault
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.textOverlay.Render(), mainView, true, true)
	case stateConfirm:
		if m.confirmationOverlay == nil {
			log.ErrorLog.Printf("confirmation overlay is nil")
			m.state = stateDefault
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.confirmationOverlay.Render(), mainView, true, true)
	case stateActivity:
		if m.activityOverlay == nil {
			log.ErrorLog.Printf("activity overlay is nil")
			m.state = stateDefault
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.activityOverlay.Render(), mainView, true, true)
	}
	return mainView
}

type hideStatusMsg struct{}

// replyMsg is sent when a backend request finishes. The session already
// holds the result; err is kept for logging and tests.
type replyMsg struct {
	err error
}

type clearedMsg struct {
	err error
}
