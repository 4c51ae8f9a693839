// Package scheduler runs periodic background jobs. Jobs never fail the
// group: errors and panics are logged and the job keeps its schedule, so the
// errgroup only joins the job goroutines.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

type Job struct {
	Name     string
	Interval time.Duration
	// RunAtStart runs Fn once before waiting for the first tick.
	RunAtStart bool
	Fn         func(ctx context.Context) error
}

// Run starts every job on its own ticker and blocks until ctx is done. A job
// error is logged and the job keeps its schedule. A job never overlaps with
// itself.
func Run(ctx context.Context, logger *slog.Logger, jobs ...Job) error {
	if logger == nil {
		logger = slog.Default()
	}

	for _, j := range jobs {
		if j.Interval <= 0 {
			return fmt.Errorf("job %q: interval must be positive, got %s", j.Name, j.Interval)
		}
	}

	var g errgroup.Group

	for _, j := range jobs {
		g.Go(func() error {
			loop(ctx, logger, j)
			return nil
		})
	}

	return g.Wait()
}

func loop(ctx context.Context, logger *slog.Logger, j Job) {
	logger.InfoContext(ctx, "job scheduled", "job", j.Name, "interval", j.Interval.String())

	if j.RunAtStart {
		runOnce(ctx, logger, j)
	}

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("job stopped", "job", j.Name)
			return
		case <-ticker.C:
			runOnce(ctx, logger, j)
		}
	}
}

func runOnce(ctx context.Context, logger *slog.Logger, j Job) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "job panicked", "job", j.Name, "panic", fmt.Sprint(r))
		}
	}()

	start := time.Now()

	err := j.Fn(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "job failed", "job", j.Name, "error", err, "took", time.Since(start))
		return
	}

	logger.DebugContext(ctx, "job finished", "job", j.Name, "took", time.Since(start))
}
