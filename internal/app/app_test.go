package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "config.toml")
	body := "latency_ms = 900\nrefresh_interval = 5\nlog_level = \"error\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	latency := 10 * time.Millisecond
	cfg, err := resolveConfig(Options{
		ConfigPath: path,
		SeedFile:   "~/seed.yaml",
		Latency:    &latency,
		Refresh:    2 * time.Second,
		LogLevel:   "debug",
	})
	if err != nil {
		t.Fatalf("resolveConfig returned error: %v", err)
	}
	if cfg.Latency != latency {
		t.Fatalf("Latency = %v, want %v", cfg.Latency, latency)
	}
	if cfg.RefreshInterval != 2*time.Second {
		t.Fatalf("RefreshInterval = %v, want 2s", cfg.RefreshInterval)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
	if want := filepath.Join(home, "seed.yaml"); cfg.SeedFile != want {
		t.Fatalf("SeedFile = %q, want %q", cfg.SeedFile, want)
	}
}

func TestResolveConfig_KeepsFileValuesWithoutFlags(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "config.toml")
	if err := os.WriteFile(path, []byte("latency_ms = 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := resolveConfig(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("resolveConfig returned error: %v", err)
	}
	if cfg.Latency != 0 {
		t.Fatalf("Latency = %v, want 0 from file", cfg.Latency)
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	missing := filepath.Join(home, "none.toml")

	negative := -time.Second
	if _, err := resolveConfig(Options{ConfigPath: missing, Latency: &negative}); err == nil {
		t.Fatalf("negative latency accepted")
	}
	if _, err := resolveConfig(Options{ConfigPath: missing, LogLevel: "loud"}); err == nil {
		t.Fatalf("unknown log level accepted")
	}
}
