package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.General.Format)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if Exists() {
		t.Error("Exists() = true for missing config")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.ReportsDir = "/data/reports"
	cfg.General.ShowCents = true
	cfg.Clean.Renames = map[string]string{"NSF CAREER K20304932": "CAREER"}
	cfg.Clean.Suffixes = []string{"K302"}
	cfg.Clean.Substrings = []string{"Doty"}

	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.General.ReportsDir != "/data/reports" || !loaded.General.ShowCents {
		t.Errorf("General = %+v", loaded.General)
	}
	if loaded.Clean.Renames["NSF CAREER K20304932"] != "CAREER" {
		t.Errorf("Renames = %v", loaded.Clean.Renames)
	}

	cleaner := loaded.Cleaner()
	if got := cleaner.Clean("NSF CAREER K20304932"); got != "CAREER" {
		t.Errorf("Cleaner().Clean = %q, want CAREER", got)
	}
	if got := cleaner.Clean("Doty NSF Small K302999"); got != "NSF Small" {
		t.Errorf("Cleaner().Clean = %q, want %q", got, "NSF Small")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := os.MkdirAll(filepath.Join(dir, "aggie"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "aggie", "config.toml"), []byte("[[["), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error for malformed config")
	}
}
