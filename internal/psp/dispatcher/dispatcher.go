package dispatcher

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"pspcatalog/internal/psp/metrics"
	"pspcatalog/internal/psp/models"
	"pspcatalog/internal/psp/ports"
	"pspcatalog/internal/psp/rules"
	dErrors "pspcatalog/pkg/domain-errors"
	"pspcatalog/pkg/requestcontext"
)

// Store is the read side of the catalog.
type Store = ports.CatalogReader

var tracer = otel.Tracer("pspcatalog/dispatcher")

// ConfigurationError reports criteria that no rule answers. It signals a
// broken rule table, never bad user input.
type ConfigurationError struct {
	Presence rules.Presence
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("dispatch configuration: no access path for presence %q", e.Presence)
}

func (e *ConfigurationError) Unwrap() error {
	return rules.ErrNoRuleMatched
}

// Dispatcher routes lookup criteria to the single matching access path.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	store    Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
	selectFn func(models.Criteria) (*rules.AccessPath, error)
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

func New(store Store, opts ...Option) (*Dispatcher, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store is required")
	}
	d := &Dispatcher{
		store:    store,
		logger:   slog.Default(),
		selectFn: rules.Select,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dispatch selects the access path for c and returns its results without
// querying the store yet. The query runs once, on first consumption.
func (d *Dispatcher) Dispatch(ctx context.Context, c models.Criteria) (*Results, error) {
	path, err := d.selectFn(c)
	if err != nil || path == nil {
		cfgErr := &ConfigurationError{Presence: rules.PresenceOf(c)}
		d.logger.ErrorContext(ctx, "psp dispatch misconfigured",
			"request_id", requestcontext.RequestID(ctx),
			"presence", cfgErr.Presence.String(),
		)
		return nil, dErrors.Wrap(cfgErr, dErrors.CodeInternal, "psp lookup unavailable")
	}

	d.metrics.ObserveDispatch(path.Name())
	d.logger.DebugContext(ctx, "psp dispatch",
		"request_id", requestcontext.RequestID(ctx),
		"path", path.Name(),
	)

	return &Results{
		path: path.Name(),
		query: func(ctx context.Context) ([]models.PspRecord, error) {
			ctx, span := tracer.Start(ctx, "psp.dispatch")
			defer span.End()
			span.SetAttributes(attribute.String("psp.access_path", path.Name()))

			records, err := path.Run(ctx, d.store, c)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "store read failed")
				d.metrics.ObserveDispatchError(path.Name())
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read psp catalog")
			}
			span.SetAttributes(attribute.Int("psp.records", len(records)))
			return records, nil
		},
	}, nil
}

// Results is a lazy, one-shot view over a single store query. The first
// consumer runs the query; its outcome is buffered and replayed to later
// consumers without querying again.
type Results struct {
	path  string
	query func(ctx context.Context) ([]models.PspRecord, error)

	once    sync.Once
	records []models.PspRecord
	err     error
}

// Path names the access path that produced the results.
func (r *Results) Path() string {
	return r.path
}

// Collect returns every matched record.
func (r *Results) Collect(ctx context.Context) ([]models.PspRecord, error) {
	r.once.Do(func() {
		r.records, r.err = r.query(ctx)
	})
	if r.err != nil {
		return nil, r.err
	}
	return slices.Clone(r.records), nil
}

// All yields matched records in store order. A read failure is yielded once
// with a zero record.
func (r *Results) All(ctx context.Context) iter.Seq2[models.PspRecord, error] {
	return func(yield func(models.PspRecord, error) bool) {
		records, err := r.Collect(ctx)
		if err != nil {
			yield(models.PspRecord{}, err)
			return
		}
		for _, rec := range records {
			if !yield(rec, nil) {
				return
			}
		}
	}
}
