package catalogsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Runner starts a guarded run. *Synchronizer satisfies it.
type Runner interface {
	Trigger(ctx context.Context) error
	Wait()
}

// Scheduler triggers a run on every tick. A tick that finds a run in progress
// is dropped, never queued.
type Scheduler struct {
	runner     Runner
	interval   time.Duration
	runOnStart bool
	logger     *slog.Logger
}

type SchedulerOption func(*Scheduler)

func WithRunOnStart(enabled bool) SchedulerOption {
	return func(s *Scheduler) {
		s.runOnStart = enabled
	}
}

func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

func NewScheduler(runner Runner, interval time.Duration, opts ...SchedulerOption) (*Scheduler, error) {
	if runner == nil {
		return nil, fmt.Errorf("sync runner is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("sync interval must be positive, got %s", interval)
	}
	s := &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start blocks until ctx is cancelled, then waits for the active run to end.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.InfoContext(ctx, "catalog sync scheduler started",
		"interval", s.interval.String(),
		"run_on_start", s.runOnStart,
	)
	defer s.runner.Wait()

	if s.runOnStart {
		s.tick(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "catalog sync scheduler stopping")
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	err := s.runner.Trigger(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrRunInProgress):
		s.logger.DebugContext(ctx, "catalog sync tick skipped, run in progress")
	default:
		s.logger.ErrorContext(ctx, "catalog sync tick failed", "error", err)
	}
}
