package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const KeyBindingsFileName = "keybindings.json"

// KeyBinding represents a custom keybinding configuration
type KeyBinding struct {
	Command string   `json:"command"` // The command name (e.g., "send", "search")
	Keys    []string `json:"keys"`    // The key combinations (e.g., ["ctrl+f"])
	Help    string   `json:"help"`    // Help text to display
}

// KeyBindingsConfig stores all custom keybindings
type KeyBindingsConfig struct {
	Version  string       `json:"version"`  // Config version for future migrations
	Bindings []KeyBinding `json:"bindings"` // List of custom keybindings
}

// DefaultKeyBindings returns the default keybindings configuration
func DefaultKeyBindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{
		Version: "1.0",
		Bindings: []KeyBinding{
			// Conversation
			{Command: "send", Keys: []string{"enter"}, Help: "↵"},
			{Command: "newline", Keys: []string{"alt+enter"}, Help: "alt+↵"},
			{Command: "retry", Keys: []string{"ctrl+r"}, Help: "ctrl+r"},
			{Command: "clear", Keys: []string{"ctrl+l"}, Help: "ctrl+l"},
			{Command: "copy", Keys: []string{"ctrl+y"}, Help: "ctrl+y"},
			{Command: "open_link", Keys: []string{"ctrl+o"}, Help: "ctrl+o"},

			// Navigation
			{Command: "search", Keys: []string{"ctrl+f"}, Help: "ctrl+f"},
			{Command: "home", Keys: []string{"home"}, Help: "home"},
			{Command: "end", Keys: []string{"end"}, Help: "end"},
			{Command: "page_up", Keys: []string{"pgup"}, Help: "pgup"},
			{Command: "page_down", Keys: []string{"pgdown"}, Help: "pgdn"},

			// Panels
			{Command: "help", Keys: []string{"?"}, Help: "?"},
			{Command: "activity", Keys: []string{"ctrl+a"}, Help: "ctrl+a"},
			{Command: "escape", Keys: []string{"esc"}, Help: "esc"},
			{Command: "quit", Keys: []string{"ctrl+c"}, Help: "ctrl+c"},
		},
	}
}

func keyBindingsPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, KeyBindingsFileName), nil
}

// LoadKeyBindings loads keybindings from the config file
func LoadKeyBindings() (*KeyBindingsConfig, error) {
	configPath, err := keyBindingsPath()
	if err != nil {
		return nil, err
	}

	// Return defaults if file doesn't exist
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return DefaultKeyBindings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keybindings: %w", err)
	}

	var config KeyBindingsConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse keybindings %s: %w", configPath, err)
	}

	// If no bindings are defined, use defaults
	if len(config.Bindings) == 0 {
		return DefaultKeyBindings(), nil
	}

	return &config, nil
}

// Save writes the keybindings to the config directory.
func (k *KeyBindingsConfig) Save() error {
	configPath, err := keyBindingsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(k, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keybindings: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// GetBinding returns the keybinding for a specific command
func (k *KeyBindingsConfig) GetBinding(command string) *KeyBinding {
	for i := range k.Bindings {
		if k.Bindings[i].Command == command {
			return &k.Bindings[i]
		}
	}
	return nil
}

// SetBinding updates or adds a keybinding for a command
func (k *KeyBindingsConfig) SetBinding(command string, keys []string, help string) {
	for i, binding := range k.Bindings {
		if binding.Command == command {
			k.Bindings[i].Keys = keys
			k.Bindings[i].Help = help
			return
		}
	}

	// Add new binding if not found
	k.Bindings = append(k.Bindings, KeyBinding{
		Command: command,
		Keys:    keys,
		Help:    help,
	})
}

// ValidateBindings checks for conflicts in keybindings
func (k *KeyBindingsConfig) ValidateBindings() map[string][]string {
	conflicts := make(map[string][]string)
	keyToCommands := make(map[string][]string)

	// Build map of keys to commands
	for _, binding := range k.Bindings {
		for _, key := range binding.Keys {
			keyToCommands[key] = append(keyToCommands[key], binding.Command)
		}
	}

	// Find conflicts
	for key, commands := range keyToCommands {
		if len(commands) > 1 {
			conflicts[key] = commands
		}
	}

	return conflicts
}
