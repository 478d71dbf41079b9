// Package config loads and saves moneylens preferences from a TOML file
// under the XDG config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultDBPath is used when neither the flag nor the config names a
// database.
const DefaultDBPath = "./money_manager.db"

// Config holds all moneylens configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Import     ImportConfig     `toml:"import"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DatabasePath  string `toml:"database_path,omitempty"`
	Currency      string `toml:"currency"`
	DefaultMonths int    `toml:"default_months"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ImportConfig holds import preferences.
type ImportConfig struct {
	DefaultFormat string `toml:"default_format,omitempty"`
}

// DefaultConfig returns the default configuration. DefaultMonths zero means
// every month in the ledger.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:      "EUR",
			DefaultMonths: 0,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// DatabasePath resolves the effective database path.
func (c Config) DatabasePath() string {
	if c.General.DatabasePath != "" {
		return c.General.DatabasePath
	}
	return DefaultDBPath
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "moneylens")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "moneylens")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
