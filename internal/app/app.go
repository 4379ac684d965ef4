package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/todo/internal/backend"
	"github.com/five82/todo/internal/config"
	"github.com/five82/todo/internal/logging"
	"github.com/five82/todo/internal/prefs"
	"github.com/five82/todo/internal/state"
	"github.com/five82/todo/internal/ui"
)

// Options configure the todo application. Zero values keep the config
// file's settings.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/todo/prefs.toml
	SeedFile   string
	Latency    *time.Duration
	Refresh    time.Duration
	LogFile    string
	LogLevel   string
	NoColor    bool
}

// Run boots the todo TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	seed, err := backend.LoadSeed(cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	statusHandler := ui.NewLogHandler(slog.LevelWarn)
	handlers := []slog.Handler{statusHandler}
	if cfg.LogFile != "" {
		fileHandler, closeLog, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer closeLog()
		handlers = append(handlers, fileHandler)
	}
	logger := logging.New(handlers...)

	mock := backend.NewMock(
		backend.WithLatency(cfg.Latency),
		backend.WithItems(seed),
		backend.WithFault(backend.FailOps(cfg.FailOps...)),
	)
	store := state.New(mock, state.WithLogger(logger.With("component", "store")))

	logger.Info("starting",
		"items", len(seed),
		"latency", cfg.Latency,
		"refresh", cfg.RefreshInterval,
		"fail_ops", cfg.FailOps,
	)

	StartPoller(ctx, store, cfg.RefreshInterval, logger.With("component", "poller"))

	return ui.Run(ui.Options{
		Context:    ctx,
		Store:      store,
		Logger:     logger.With("component", "ui"),
		LogHandler: statusHandler,
		LogFile:    cfg.LogFile,
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
		NoColor:    opts.NoColor,
	})
}

// resolveConfig loads the config file and applies command-line overrides.
func resolveConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if opts.SeedFile != "" {
		path, err := config.ExpandPath(opts.SeedFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("seed file: %w", err)
		}
		cfg.SeedFile = path
	}
	if opts.Latency != nil {
		if *opts.Latency < 0 {
			return config.Config{}, fmt.Errorf("latency must not be negative, got %s", *opts.Latency)
		}
		cfg.Latency = *opts.Latency
	}
	if opts.Refresh > 0 {
		cfg.RefreshInterval = opts.Refresh
	}
	if opts.LogFile != "" {
		path, err := config.ExpandPath(opts.LogFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("log file: %w", err)
		}
		cfg.LogFile = path
	}
	if opts.LogLevel != "" {
		level, err := config.ParseLevel(opts.LogLevel)
		if err != nil {
			return config.Config{}, err
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}
