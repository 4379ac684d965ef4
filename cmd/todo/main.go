package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/todo/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "todo: %v\n", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "todo: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string) (app.Options, error) {
	flags := pflag.NewFlagSet("todo", pflag.ContinueOnError)
	flags.SortFlags = false

	var opts app.Options
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/todo/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/todo/prefs.toml)")
	flags.StringVar(&opts.SeedFile, "seed", "", "YAML file with the initial items")
	latency := flags.Duration("latency", 0, "simulated backend latency, e.g. 300ms")
	flags.DurationVar(&opts.Refresh, "refresh", 0, "background refetch interval, e.g. 10s (0 disables)")
	flags.StringVar(&opts.LogFile, "log-file", "", "write JSON logs to this file")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable colors")

	if err := flags.Parse(args); err != nil {
		return app.Options{}, err
	}
	if flags.NArg() > 0 {
		return app.Options{}, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}
	if flags.Changed("latency") {
		opts.Latency = latency
	}
	return opts, nil
}
