package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"pspcatalog/internal/platform/config"
	"pspcatalog/internal/platform/postgres"
	platformredis "pspcatalog/internal/platform/redis"
	"pspcatalog/internal/psp/catalogsync"
	"pspcatalog/internal/psp/dispatcher"
	"pspcatalog/internal/psp/feed"
	pspmetrics "pspcatalog/internal/psp/metrics"
	"pspcatalog/internal/psp/ports"
	"pspcatalog/internal/psp/service"
	"pspcatalog/internal/psp/store"
	httptransport "pspcatalog/internal/transport/http"
)

type catalogStore interface {
	ports.CatalogReader
	ports.CatalogWriter
}

// app holds the process-wide dependencies shared by every command.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *pspmetrics.Metrics

	db    *sql.DB
	redis *platformredis.Client
	store catalogStore

	service *service.Service

	// syncer is nil when no upstream feed is configured.
	syncer *catalogsync.Synchronizer
}

func buildApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: pspmetrics.New(),
	}

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	a.db = db
	if db != nil {
		if err := store.Migrate(ctx, db); err != nil {
			a.close()
			return nil, fmt.Errorf("migrate catalog schema: %w", err)
		}
		a.store = store.NewPostgres(db)
		logger.InfoContext(ctx, "using postgres catalog store")
	} else {
		a.store = store.NewInMemory()
		logger.WarnContext(ctx, "DATABASE_URL not set, using in-memory catalog store")
	}

	rc, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		a.close()
		return nil, err
	}
	a.redis = rc

	d, err := dispatcher.New(a.store,
		dispatcher.WithLogger(logger),
		dispatcher.WithMetrics(a.metrics),
	)
	if err != nil {
		a.close()
		return nil, err
	}
	a.service, err = service.New(d, service.WithLogger(logger))
	if err != nil {
		a.close()
		return nil, err
	}

	if !cfg.Feed.Enabled() {
		logger.WarnContext(ctx, "PSP_FEED_BASE_URL not set, catalog sync disabled")
		return a, nil
	}
	a.syncer, err = a.buildSynchronizer()
	if err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) buildSynchronizer() (*catalogsync.Synchronizer, error) {
	client, err := feed.New(a.cfg.Feed.BaseURL, a.cfg.Feed.APIKey, a.cfg.Feed.Timeout,
		feed.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}

	opts := []catalogsync.Option{
		catalogsync.WithLogger(a.logger),
		catalogsync.WithMetrics(a.metrics),
		catalogsync.WithPageSize(a.cfg.Sync.PageSize),
	}
	if a.redis != nil {
		guard, err := catalogsync.NewRedisGuard(a.redis.Client,
			catalogsync.WithLockTTL(a.cfg.Sync.LockTTL),
			catalogsync.WithGuardLogger(a.logger),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, catalogsync.WithGuard(guard))
	}

	return catalogsync.New(client, a.store, opts...)
}

func (a *app) healthChecks() map[string]httptransport.HealthCheck {
	checks := map[string]httptransport.HealthCheck{}
	if a.db != nil {
		checks["postgres"] = a.db.PingContext
	}
	if a.redis != nil {
		checks["redis"] = a.redis.Health
	}
	return checks
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("failed to close redis", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("failed to close postgres", "error", err)
		}
	}
}
