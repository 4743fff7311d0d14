package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pspcatalog/internal/psp/dispatcher"
	"pspcatalog/internal/psp/models"
	dErrors "pspcatalog/pkg/domain-errors"
	"pspcatalog/pkg/requestcontext"
)

// Dispatcher routes criteria to an access path.
type Dispatcher interface {
	Dispatch(ctx context.Context, c models.Criteria) (*dispatcher.Results, error)
}

// Service answers catalog lookups for callers.
type Service struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(d Dispatcher, opts ...Option) (*Service, error) {
	if d == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	s := &Service{
		dispatcher: d,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Retrieve returns the PSPs matching the optional criteria. Codes are matched
// upper-cased; a nil amount leaves the amount unconstrained.
func (s *Service) Retrieve(ctx context.Context, amount *int64, language, paymentType string) ([]models.PspRecord, error) {
	if amount != nil && *amount < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "amount must not be negative")
	}
	start := time.Now()

	criteria := models.Criteria{
		Amount:      amount,
		Language:    strings.ToUpper(strings.TrimSpace(language)),
		PaymentType: strings.ToUpper(strings.TrimSpace(paymentType)),
	}

	results, err := s.dispatcher.Dispatch(ctx, criteria)
	if err != nil {
		return nil, err
	}
	records, err := results.Collect(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "psp lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"path", results.Path(),
			"error", err,
		)
		return nil, err
	}

	s.logger.DebugContext(ctx, "psp lookup",
		"request_id", requestcontext.RequestID(ctx),
		"path", results.Path(),
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}
