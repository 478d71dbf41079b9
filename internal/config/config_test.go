package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", cfg.General.Currency)
	}
	if cfg.General.DefaultMonths != 0 {
		t.Errorf("DefaultMonths = %d, want 0", cfg.General.DefaultMonths)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if Exists() {
		t.Error("Exists() = true before any Save")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DatabasePath = "/data/ledger.db"
	cfg.General.Currency = "USD"
	cfg.General.DefaultMonths = 12
	cfg.Import.DefaultFormat = "moneymanager"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestSaveFileMode(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := Save(DefaultConfig()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if got := info.Mode().Perm(); got != 0o600 {
		t.Errorf("config mode = %o, want 600", got)
	}
}

func TestDatabasePathFallback(t *testing.T) {
	var cfg Config
	if got := cfg.DatabasePath(); got != DefaultDBPath {
		t.Errorf("DatabasePath = %q, want %q", got, DefaultDBPath)
	}

	cfg.General.DatabasePath = "/tmp/x.db"
	if got := cfg.DatabasePath(); got != "/tmp/x.db" {
		t.Errorf("DatabasePath = %q, want override", got)
	}
}

func TestConfigPathUnderXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, "moneylens", "config.toml")
	if got := ConfigPath(); got != want {
		t.Errorf("ConfigPath = %q, want %q", got, want)
	}
}
