package catalogsync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pspcatalog/internal/psp/metrics"
	"pspcatalog/internal/psp/models"
	"pspcatalog/internal/psp/ports"
	dErrors "pspcatalog/pkg/domain-errors"
	"pspcatalog/pkg/platform/sentinel"
	"pspcatalog/pkg/requestcontext"
)

const DefaultPageSize = 50

// ErrRunInProgress is returned when another run holds the guard.
var ErrRunInProgress = fmt.Errorf("catalog sync already in progress: %w", sentinel.ErrAlreadyHeld)

var tracer = otel.Tracer("pspcatalog/catalogsync")

// RunState is the position of a run in the pagination state machine.
type RunState string

const (
	StateIdle     RunState = "idle"
	StateFetching RunState = "fetching"
	StateDone     RunState = "done"
	StateFailed   RunState = "failed"
)

// RunReport summarizes one run from page 0 to termination. TotalPages is the
// last count reported upstream, or -1 when no page arrived.
type RunReport struct {
	RunID        string
	State        RunState
	PagesFetched int
	TotalPages   int
	Merged       int
	Skipped      int
	StartedAt    time.Time
	FinishedAt   time.Time
	Err          error
}

func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Synchronizer pulls the upstream feed page by page and upserts every valid
// row before requesting the next page.
type Synchronizer struct {
	feed     ports.FeedClient
	store    ports.CatalogWriter
	local    *LocalGuard
	shared   RunGuard
	pageSize int
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	inflight sync.WaitGroup
}

type Option func(*Synchronizer)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Synchronizer) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Synchronizer) {
		s.metrics = m
	}
}

// WithGuard adds a guard shared with other processes, e.g. a RedisGuard.
// It is acquired after the in-process guard and released before it, so a
// lapsed shared lease never lets this process start a second run.
func WithGuard(g RunGuard) Option {
	return func(s *Synchronizer) {
		s.shared = g
	}
}

func WithPageSize(n int) Option {
	return func(s *Synchronizer) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Synchronizer) {
		s.now = now
	}
}

func New(feed ports.FeedClient, store ports.CatalogWriter, opts ...Option) (*Synchronizer, error) {
	if feed == nil {
		return nil, fmt.Errorf("feed client is required")
	}
	if store == nil {
		return nil, fmt.Errorf("catalog store is required")
	}
	s := &Synchronizer{
		feed:     feed,
		store:    store,
		local:    NewLocalGuard(),
		pageSize: DefaultPageSize,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TryRun executes one full run if no other run holds the guard, and
// returns ErrRunInProgress otherwise. A failed run returns its report
// together with the error that ended it.
func (s *Synchronizer) TryRun(ctx context.Context) (*RunReport, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	report := s.run(ctx)
	return report, report.Err
}

// Trigger acquires the guard and starts a run in the background. The run is
// detached from ctx cancellation; Wait blocks until it finishes.
func (s *Synchronizer) Trigger(ctx context.Context) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}

	runCtx := context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer release()
		_ = s.run(runCtx)
	}()
	return nil
}

// Wait blocks until every run started by Trigger has finished.
func (s *Synchronizer) Wait() {
	s.inflight.Wait()
}

func (s *Synchronizer) acquire(ctx context.Context) (func(), error) {
	releaseLocal, ok, _ := s.local.TryAcquire(ctx)
	if !ok {
		s.metrics.ObserveRun(metrics.OutcomeSkipped, 0, 0)
		return nil, ErrRunInProgress
	}
	if s.shared == nil {
		return releaseLocal, nil
	}

	releaseShared, ok, err := s.shared.TryAcquire(ctx)
	if err != nil {
		releaseLocal()
		s.logger.ErrorContext(ctx, "failed to acquire sync guard", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "sync guard unavailable")
	}
	if !ok {
		releaseLocal()
		s.metrics.ObserveRun(metrics.OutcomeSkipped, 0, 0)
		return nil, ErrRunInProgress
	}
	return func() {
		releaseShared()
		releaseLocal()
	}, nil
}

func (s *Synchronizer) run(ctx context.Context) *RunReport {
	report := &RunReport{
		RunID:      uuid.NewString(),
		State:      StateIdle,
		TotalPages: -1,
		StartedAt:  s.now(),
	}
	ctx = requestcontext.WithRunID(ctx, report.RunID)
	ctx = requestcontext.WithTime(ctx, report.StartedAt)

	ctx, span := tracer.Start(ctx, "psp.sync.run", trace.WithAttributes(
		attribute.String("psp.sync.run_id", report.RunID),
		attribute.Int("psp.sync.page_size", s.pageSize),
	))
	defer span.End()

	s.logger.InfoContext(ctx, "catalog sync started",
		"run_id", report.RunID,
		"page_size", s.pageSize,
	)

	for page := 0; ; page++ {
		report.State = StateFetching
		done, err := s.step(ctx, page, report)
		if err != nil {
			report.State = StateFailed
			report.Err = err
			span.RecordError(err)
			span.SetStatus(codes.Error, "sync run failed")
			break
		}
		if done {
			report.State = StateDone
			break
		}
	}

	report.FinishedAt = s.now()
	s.finish(ctx, report)
	span.SetAttributes(
		attribute.String("psp.sync.state", string(report.State)),
		attribute.Int("psp.sync.pages", report.PagesFetched),
		attribute.Int("psp.sync.merged", report.Merged),
	)
	return report
}

// step fetches and merges one page and reports whether the run is complete.
func (s *Synchronizer) step(ctx context.Context, page int, report *RunReport) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p, err := s.feed.FetchPage(ctx, page, s.pageSize)
	if err != nil {
		return false, fmt.Errorf("fetch page %d: %w", page, err)
	}
	if p == nil || p.TotalPages == nil {
		return false, fmt.Errorf("fetch page %d: missing total pages", page)
	}
	total := *p.TotalPages
	report.PagesFetched++
	if prev := report.TotalPages; prev >= 0 && total > prev {
		s.logger.WarnContext(ctx, "upstream page count grew during run",
			"run_id", report.RunID,
			"page", page,
			"previous_total_pages", prev,
			"total_pages", total,
		)
		return false, fmt.Errorf("fetch page %d: total pages grew from %d to %d", page, prev, total)
	}
	report.TotalPages = total

	if total == 0 {
		s.metrics.ObservePage(0, 0)
		return true, nil
	}

	merged, skipped, err := s.merge(ctx, page, p)
	report.Merged += merged
	report.Skipped += skipped
	s.metrics.ObservePage(merged, skipped)
	if err != nil {
		return false, err
	}

	s.logger.DebugContext(ctx, "catalog page merged",
		"run_id", report.RunID,
		"page", page,
		"total_pages", total,
		"merged", merged,
		"skipped", skipped,
	)
	return page+1 >= total, nil
}

func (s *Synchronizer) merge(ctx context.Context, page int, p *models.Page) (merged, skipped int, err error) {
	updatedAt := requestcontext.Now(ctx)
	for i, svc := range p.Services {
		rec, convErr := ToRecord(svc, updatedAt)
		if convErr != nil {
			skipped++
			s.logger.WarnContext(ctx, "skipping upstream service",
				"run_id", requestcontext.RunID(ctx),
				"page", page,
				"row", i,
				"psp_code", svc.PspCode,
				"error", convErr,
			)
			continue
		}
		if err := s.store.Upsert(ctx, rec); err != nil {
			return merged, skipped, fmt.Errorf("upsert %s on page %d: %w", svc.PspCode, page, err)
		}
		merged++
	}
	return merged, skipped, nil
}

func (s *Synchronizer) finish(ctx context.Context, report *RunReport) {
	outcome := metrics.OutcomeDone
	if report.State == StateFailed {
		outcome = metrics.OutcomeFailed
	}
	s.metrics.ObserveRun(outcome, report.Duration().Seconds(), float64(report.FinishedAt.Unix()))

	attrs := []any{
		"run_id", report.RunID,
		"state", string(report.State),
		"pages", report.PagesFetched,
		"total_pages", report.TotalPages,
		"merged", report.Merged,
		"skipped", report.Skipped,
		"duration_ms", report.Duration().Milliseconds(),
	}
	if report.Err != nil {
		s.logger.ErrorContext(ctx, "catalog sync failed", append(attrs, "error", report.Err)...)
		return
	}
	s.logger.InfoContext(ctx, "catalog sync finished", attrs...)
}
