package config

import (
	"chatterm/log"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	ConfigFileName = "config.json"
	// HomeEnv overrides the configuration directory.
	HomeEnv = "CHATTERM_HOME"

	defaultAPIBaseURL     = "http://localhost:8080"
	defaultRequestTimeout = 30
	defaultMaxParseRunes  = 100_000
	defaultCodeTheme      = "dracula"
)

// Storage backends.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Message renderers.
const (
	RendererNative  = "native"
	RendererGlamour = "glamour"
)

// Dark mode settings.
const (
	DarkModeAuto  = "auto"
	DarkModeDark  = "dark"
	DarkModeLight = "light"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".chatterm"), nil
}

// Config represents the application configuration
type Config struct {
	// APIBaseURL is the chat backend, without the /api/chatgpt/ path.
	APIBaseURL string `json:"api_base_url"`
	// RequestTimeoutSeconds bounds a single backend request.
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
	// StorageBackend selects where history is kept: "file" or "sqlite".
	StorageBackend string `json:"storage_backend"`
	// Renderer selects how assistant messages are drawn: "native" or "glamour".
	Renderer string `json:"renderer"`
	// FuzzySearch switches message search from substring to fuzzy matching.
	FuzzySearch bool `json:"fuzzy_search"`
	// MaxParseRunes is the longest message that is scanned for markup.
	MaxParseRunes int `json:"max_parse_runes"`
	// CodeTheme is the chroma style used for code blocks.
	CodeTheme string `json:"code_theme"`
	// DarkMode is "auto", "dark" or "light".
	DarkMode string `json:"dark_mode"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:            defaultAPIBaseURL,
		RequestTimeoutSeconds: defaultRequestTimeout,
		StorageBackend:        StorageFile,
		Renderer:              RendererNative,
		FuzzySearch:           false,
		MaxParseRunes:         defaultMaxParseRunes,
		CodeTheme:             defaultCodeTheme,
		DarkMode:              DarkModeAuto,
	}
}

// RequestTimeout returns RequestTimeoutSeconds as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIBaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.RequestTimeoutSeconds, validation.Required, validation.Min(1), validation.Max(600)),
		validation.Field(&c.StorageBackend, validation.Required, validation.In(StorageFile, StorageSQLite)),
		validation.Field(&c.Renderer, validation.Required, validation.In(RendererNative, RendererGlamour)),
		validation.Field(&c.MaxParseRunes, validation.Min(0)),
		validation.Field(&c.DarkMode, validation.Required, validation.In(DarkModeAuto, DarkModeDark, DarkModeLight)),
	)
}

func httpURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return validation.NewError("config.api_base_url.scheme", "must start with http:// or https://")
	}
	return nil
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}

	config.mergeDefaults(DefaultConfig())

	if err := config.Validate(); err != nil {
		log.ErrorLog.Printf("invalid config file %s: %v", configPath, err)
		return DefaultConfig()
	}

	return &config
}

// mergeDefaults fills fields that older config files do not have.
func (c *Config) mergeDefaults(defaults *Config) {
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaults.APIBaseURL
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if c.StorageBackend == "" {
		c.StorageBackend = defaults.StorageBackend
	}
	if c.Renderer == "" {
		c.Renderer = defaults.Renderer
	}
	if c.MaxParseRunes == 0 {
		c.MaxParseRunes = defaults.MaxParseRunes
	}
	if c.CodeTheme == "" {
		c.CodeTheme = defaults.CodeTheme
	}
	if c.DarkMode == "" {
		c.DarkMode = defaults.DarkMode
	}
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig validates config and writes it to the config directory.
func SaveConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return saveConfig(config)
}
