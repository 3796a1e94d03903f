package scheduler

import (
	"context"
	"log/slog"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then on each tick until ctx is done.
// Errors are logged and do not stop the loop. Runs never overlap.
func Every(ctx context.Context, interval time.Duration, name string, task Task, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	run := func() {
		if err := task(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("scheduled task failed", "task", name, "error", err)
		}
	}

	run()

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
