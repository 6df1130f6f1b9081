package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"selectkit/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version     int            `toml:"version"`
	OptionsFile string         `toml:"options_file"` // TOML option list; empty uses the built-in demo data
	LogFile     string         `toml:"log_file"`
	Widgets     WidgetSettings `toml:"widgets"`
	Theme       Theme          `toml:"theme"`
}

// WidgetSettings configures both selection widgets
type WidgetSettings struct {
	LabelKey          string `toml:"label_key"`
	ValueKey          string `toml:"value_key"`
	EqualityKey       string `toml:"equality_key"` // empty follows label_key
	LimitPill         int    `toml:"limit_pill"`
	Placeholder       string `toml:"placeholder"`
	SelectPlaceholder string `toml:"select_placeholder"`
	FilterStrategy    string `toml:"filter_strategy"` // "substring" or "fuzzy"
	Multiple          bool   `toml:"multiple"`
}

// Theme holds ANSI 256 colour codes for the widgets
type Theme struct {
	Active string `toml:"active"`
	Focus  string `toml:"focus"`
	Tag    string `toml:"tag"`
	Border string `toml:"border"`
	Dim    string `toml:"dim"`
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

// DefaultPath returns the config file location under the user config dir
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "selectkit", "config.toml")
}

// NewConfigService creates a config service reading from path.
// An empty path uses DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		filePath: path,
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publishLoaded(cfg)
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publishLoaded(cfg)
	return cfg, nil
}

func (cs *configService) publishLoaded(cfg *Config) {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:        cs.filePath,
			OptionsFile: cfg.OptionsFile,
		})
	}
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Missing fields keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
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
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects settings the widgets cannot use
func (c *Config) Validate() error {
	if c.Widgets.LimitPill < 0 {
		return fmt.Errorf("widgets.limit_pill must not be negative, got %d", c.Widgets.LimitPill)
	}
	switch c.Widgets.FilterStrategy {
	case "", "substring", "fuzzy":
	default:
		return fmt.Errorf("unknown widgets.filter_strategy %q", c.Widgets.FilterStrategy)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		LogFile: "selectkit.log",
		Widgets: WidgetSettings{
			LabelKey:          "label",
			ValueKey:          "value",
			LimitPill:         2,
			Placeholder:       "Type...",
			SelectPlaceholder: "Select Value",
			FilterStrategy:    "substring",
			Multiple:          true,
		},
		Theme: Theme{
			Active: "99",
			Focus:  "62",
			Tag:    "168",
			Border: "241",
			Dim:    "245",
		},
	}
}
