package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/five82/todo/internal/state"
)

const maxBackoff = 30 * time.Second

// StartPoller launches a background goroutine that refetches the item
// list every interval. Ticks that find the store busy are skipped. After
// failures the wait grows exponentially up to maxBackoff. It returns
// immediately; the goroutine exits when ctx is done.
func StartPoller(ctx context.Context, store *state.Store, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 || store == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			failures = refresh(ctx, store, failures, logger)
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// refresh runs one fetch and returns the updated failure count.
func refresh(ctx context.Context, store *state.Store, failures int, logger *slog.Logger) int {
	job, err := store.FetchAll(ctx)
	if err != nil {
		if errors.Is(err, state.ErrBusy) {
			logger.Debug("refresh skipped", "reason", err)
			return failures
		}
		logger.Warn("refresh dispatch failed", "error", err)
		return failures + 1
	}
	if err := job(); err != nil {
		if ctx.Err() != nil {
			return failures
		}
		logger.Warn("refresh failed", "error", err, "failures", failures+1)
		return failures + 1
	}
	return 0
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
