package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Environment variables that override the config file.
const (
	EnvDataDir = "MILO_DATA_DIR"
	EnvBackend = "MILO_BACKEND"
)

// Config holds all milo application configuration. The allowance settings
// themselves live in the record store, not here.
type Config struct {
	General GeneralConfig `toml:"general"`
	Logging LoggingConfig `toml:"logging"`
	History HistoryConfig `toml:"history"`
}

// GeneralConfig selects where and how records are stored.
type GeneralConfig struct {
	DataDir string `toml:"data_dir,omitempty"`
	Backend string `toml:"backend"`
}

// LoggingConfig holds the minimum log level.
type LoggingConfig struct {
	Level slog.Level `toml:"level"`
}

// HistoryConfig tunes the history view.
type HistoryConfig struct {
	ChartPoints int `toml:"chart_points"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DataDir: DefaultDataDir(),
			Backend: "sqlite",
		},
		Logging: LoggingConfig{
			Level: slog.LevelWarn,
		},
		History: HistoryConfig{
			ChartPoints: 24,
		},
	}
}

// Validate checks values that cannot be repaired by falling back to defaults.
func (c Config) Validate() error {
	return validation.Errors{
		"general.data_dir":     validation.Validate(c.General.DataDir, validation.Required),
		"general.backend":      validation.Validate(c.General.Backend, validation.Required, validation.In("sqlite", "disk")),
		"history.chart_points": validation.Validate(c.History.ChartPoints, validation.Required, validation.Min(2), validation.Max(365)),
	}.Filter()
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "milo")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "milo")
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "milo")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "milo")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFrom reads the config file at path. A missing file yields the
// defaults. Environment overrides are applied last.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.General.DataDir = dir
	}
	if backend := os.Getenv(EnvBackend); backend != "" {
		cfg.General.Backend = backend
	}

	return cfg, nil
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
