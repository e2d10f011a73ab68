package keys

import (
	"sync"

	"chatterm/config"

	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeySend KeyName = iota
	KeyNewline
	KeyRetry
	KeyClear
	KeyCopy
	KeyOpenLink

	KeySearch
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyHelp     // Key for showing help screen
	KeyActivity // Key for showing the backend activity log
	KeyEscape   // Closes overlays and leaves search
	KeyQuit

	// Confirmation overlay keys.
	KeyConfirm
	KeyCancel
)

// commandNames maps keybindings.json command names to key names.
var commandNames = map[string]KeyName{
	"send":      KeySend,
	"newline":   KeyNewline,
	"retry":     KeyRetry,
	"clear":     KeyClear,
	"copy":      KeyCopy,
	"open_link": KeyOpenLink,
	"search":    KeySearch,
	"home":      KeyHome,
	"end":       KeyEnd,
	"page_up":   KeyPageUp,
	"page_down": KeyPageDown,
	"help":      KeyHelp,
	"activity":  KeyActivity,
	"escape":    KeyEscape,
	"quit":      KeyQuit,
}

// helpTexts is the description shown next to each binding.
var helpTexts = map[KeyName]string{
	KeySend:     "send",
	KeyNewline:  "new line",
	KeyRetry:    "retry",
	KeyClear:    "clear chat",
	KeyCopy:     "copy reply",
	KeyOpenLink: "open link",
	KeySearch:   "search",
	KeyHome:     "scroll to top",
	KeyEnd:      "scroll to bottom",
	KeyPageUp:   "page up",
	KeyPageDown: "page down",
	KeyHelp:     "help",
	KeyActivity: "activity log",
	KeyEscape:   "close",
	KeyQuit:     "quit",
	KeyConfirm:  "confirm",
	KeyCancel:   "cancel",
}

var (
	mu sync.RWMutex
	// keyStrings maps a key press to its name.
	keyStrings map[string]KeyName
	// bindings holds the bubbles binding for every key name.
	bindings map[KeyName]key.Binding
)

func init() {
	apply(config.DefaultKeyBindings())
}

// Apply replaces the active bindings with kb. Commands missing from kb keep
// no binding; unknown commands are ignored.
func Apply(kb *config.KeyBindingsConfig) {
	apply(kb)
}

func apply(kb *config.KeyBindingsConfig) {
	strs := make(map[string]KeyName)
	binds := make(map[KeyName]key.Binding)
	for _, b := range kb.Bindings {
		name, ok := commandNames[b.Command]
		if !ok {
			continue
		}
		for _, k := range b.Keys {
			strs[k] = name
		}
		binds[name] = key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(b.Help, helpTexts[name]),
		)
	}

	binds[KeyConfirm] = key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", helpTexts[KeyConfirm]))
	binds[KeyCancel] = key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", helpTexts[KeyCancel]))

	mu.Lock()
	defer mu.Unlock()
	keyStrings = strs
	bindings = binds
}

// InitializeCustomKeyBindings loads keybindings.json and applies it.
func InitializeCustomKeyBindings() error {
	kb, err := config.LoadKeyBindings()
	if err != nil {
		return err
	}
	Apply(kb)
	return nil
}

// GetKeyName returns the KeyName bound to a key press.
func GetKeyName(keyStr string) (KeyName, bool) {
	mu.RLock()
	defer mu.RUnlock()
	name, ok := keyStrings[keyStr]
	return name, ok
}

// Binding returns the bubbles binding for name. The zero binding is
// returned for unbound names.
func Binding(name KeyName) key.Binding {
	mu.RLock()
	defer mu.RUnlock()
	return bindings[name]
}

// Bindings returns the bindings for names, skipping unbound ones. It is used
// to build help lines.
func Bindings(names ...KeyName) []key.Binding {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]key.Binding, 0, len(names))
	for _, n := range names {
		if b, ok := bindings[n]; ok {
			out = append(out, b)
		}
	}
	return out
}
