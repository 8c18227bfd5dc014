package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"spotlight/internal/domain"
	"spotlight/internal/eventbus"
)

// DefaultDebounce is the quiet period before a typed query is searched
const DefaultDebounce = 150 * time.Millisecond

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config represents the palette configuration
type Config struct {
	Version  int            `toml:"version"`
	Palette  PaletteConfig  `toml:"palette"`
	Hotkey   HotkeyConfig   `toml:"hotkey"`
	Behavior BehaviorConfig `toml:"behavior"`
	Log      LogConfig      `toml:"log"`
}

// PaletteConfig holds search and display options
type PaletteConfig struct {
	Placeholder  string   `toml:"placeholder"`
	EmptyMessage string   `toml:"empty_message"`
	MaxResults   int      `toml:"max_results"`
	FuzzyMatch   bool     `toml:"fuzzy_match"`
	ShowGroups   bool     `toml:"show_groups"`
	ShowRecent   bool     `toml:"show_recent"`
	RecentLimit  int      `toml:"recent_limit"`
	Debounce     Duration `toml:"debounce"`
}

// HotkeyConfig is the global open/close chord
type HotkeyConfig struct {
	Modifier string `toml:"modifier"` // ctrl, alt, meta or shift
	Key      string `toml:"key"`
}

// String renders the chord the way bubbletea names keys, e.g. "ctrl+k"
func (h HotkeyConfig) String() string {
	if h.Modifier == "" {
		return strings.ToLower(h.Key)
	}
	return strings.ToLower(h.Modifier) + "+" + strings.ToLower(h.Key)
}

// BehaviorConfig controls when the palette closes
type BehaviorConfig struct {
	CloseOnSelect       bool   `toml:"close_on_select"`
	CloseOnEscape       bool   `toml:"close_on_escape"`
	CloseOnClickOutside bool   `toml:"close_on_click_outside"`
	Origin              string `toml:"origin"` // host origin used by the navigation guard
}

// LogConfig controls the log sink
type LogConfig struct {
	Path      string `toml:"path"`
	Verbosity int    `toml:"verbosity"`
}

// Duration is a time.Duration that round-trips through TOML as "150ms"
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("failed to parse duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// Validate checks numeric bounds
func (c *Config) Validate() error {
	if c.Palette.MaxResults <= 0 {
		return fmt.Errorf("%w: max_results must be > 0, got %d", ErrInvalid, c.Palette.MaxResults)
	}
	if c.Palette.RecentLimit < 0 {
		return fmt.Errorf("%w: recent_limit must be >= 0, got %d", ErrInvalid, c.Palette.RecentLimit)
	}
	if c.Palette.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative", ErrInvalid)
	}
	if c.Hotkey.Key == "" {
		return fmt.Errorf("%w: hotkey key must be set", ErrInvalid)
	}
	switch strings.ToLower(c.Hotkey.Modifier) {
	case "", "ctrl", "alt", "meta", "shift":
	default:
		return fmt.Errorf("%w: unknown hotkey modifier %q", ErrInvalid, c.Hotkey.Modifier)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "spotlight", "config.toml")
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service that publishes load/save events
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// Load loads the configuration, falling back to defaults when the file is missing
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publish(domain.ConfigLoadedEvent{})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publish(domain.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

// Save saves the configuration to the service path
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.publish(domain.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from the
// file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(config)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal encodes config as TOML
func Marshal(config *Config) ([]byte, error) {
	data, err := toml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func (cs *configService) publish(event domain.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(event)
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Palette: PaletteConfig{
			Placeholder:  "Search commands…",
			EmptyMessage: "No results found",
			MaxResults:   10,
			FuzzyMatch:   false,
			ShowGroups:   true,
			ShowRecent:   true,
			RecentLimit:  5,
			Debounce:     Duration(DefaultDebounce),
		},
		Hotkey: HotkeyConfig{
			Modifier: "ctrl",
			Key:      "k",
		},
		Behavior: BehaviorConfig{
			CloseOnSelect:       true,
			CloseOnEscape:       true,
			CloseOnClickOutside: true,
			Origin:              "https://localhost",
		},
		Log: LogConfig{
			Path: "spotlight.log",
		},
	}
}
