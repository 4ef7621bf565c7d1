// Package config loads and saves the aggie configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dave-doty/aggie-unterprise/internal/clean"
)

// Config holds all aggie configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Clean      CleanConfig      `toml:"clean"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds report-processing preferences.
type GeneralConfig struct {
	ReportsDir string `toml:"reports_dir,omitempty"`
	ShowCents  bool   `toml:"show_cents"`
	Ascending  bool   `toml:"ascending"`
	Format     string `toml:"format"` // "text" or "markdown"
}

// CleanConfig holds persistent project-name cleaning rules. The renames
// table replaces whole raw names; substrings and suffixes work the same way
// as the corresponding command-line flags.
type CleanConfig struct {
	Renames    map[string]string `toml:"renames,omitempty"`
	Substrings []string          `toml:"substrings,omitempty"`
	Suffixes   []string          `toml:"suffixes,omitempty"`
}

// AppearanceConfig holds theme settings for the TUI.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Format: "text",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Cleaner builds a name cleaner from the configured rules.
func (c Config) Cleaner() clean.Cleaner {
	return clean.Cleaner{
		Renames:    c.Clean.Renames,
		Substrings: c.Clean.Substrings,
		Suffixes:   c.Clean.Suffixes,
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "aggie")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "aggie")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
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
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
