package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/todo/internal/todo"
)

// Config captures the runtime settings for the todo UI and its mock
// backend.
type Config struct {
	Latency         time.Duration
	SeedFile        string
	RefreshInterval time.Duration
	LogFile         string
	LogLevel        slog.Level
	FailOps         []todo.Op
}

const (
	defaultConfigPath = "~/.config/todo/config.toml"
	defaultLatency    = 300 * time.Millisecond
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Latency:  defaultLatency,
		LogLevel: slog.LevelInfo,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		LatencyMS       *int     `toml:"latency_ms"`
		SeedFile        string   `toml:"seed_file"`
		RefreshInterval int      `toml:"refresh_interval"`
		LogFile         string   `toml:"log_file"`
		LogLevel        string   `toml:"log_level"`
		FailOps         []string `toml:"fail_ops"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.LatencyMS != nil {
		if *raw.LatencyMS < 0 {
			return Config{}, fmt.Errorf("latency_ms must not be negative, got %d", *raw.LatencyMS)
		}
		cfg.Latency = time.Duration(*raw.LatencyMS) * time.Millisecond
	}
	if raw.RefreshInterval > 0 {
		cfg.RefreshInterval = time.Duration(raw.RefreshInterval) * time.Second
	}
	if seed := strings.TrimSpace(raw.SeedFile); seed != "" {
		path, err := expandPath(seed)
		if err != nil {
			return Config{}, fmt.Errorf("seed_file: %w", err)
		}
		cfg.SeedFile = path
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		path, err := expandPath(logFile)
		if err != nil {
			return Config{}, fmt.Errorf("log_file: %w", err)
		}
		cfg.LogFile = path
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		parsed, err := ParseLevel(level)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = parsed
	}
	for _, name := range raw.FailOps {
		op, ok := todo.ParseOp(name)
		if !ok {
			return Config{}, fmt.Errorf("fail_ops: unknown operation %q", name)
		}
		cfg.FailOps = append(cfg.FailOps, op)
	}

	return cfg, nil
}

// ParseLevel maps debug/info/warn/error onto a slog level.
func ParseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
