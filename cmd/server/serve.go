package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pspcatalog/internal/platform/config"
	"pspcatalog/internal/platform/httpserver"
	"pspcatalog/internal/platform/logger"
	httpmetrics "pspcatalog/internal/platform/metrics"
	"pspcatalog/internal/psp/catalogsync"
	"pspcatalog/internal/psp/handler"
	httptransport "pspcatalog/internal/transport/http"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the PSP lookup API and run scheduled catalog syncs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides PSP_CATALOG_ADDR)")
	return cmd
}

func runServe(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New(cfg.Server.LogLevel)
	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	// A nil *Synchronizer must reach the handler as a nil interface.
	var trigger handler.SyncTrigger
	if a.syncer != nil {
		trigger = a.syncer
	}
	router := httptransport.NewRouter(httptransport.Options{
		Logger:       log,
		Metrics:      httpmetrics.New(),
		HealthChecks: a.healthChecks(),
	}, handler.New(a.service, trigger, log))
	srv := httpserver.New(cfg.Server, router)

	var sched *catalogsync.Scheduler
	if a.syncer != nil {
		sched, err = catalogsync.NewScheduler(a.syncer, cfg.Sync.Interval,
			catalogsync.WithRunOnStart(cfg.Sync.OnStart),
			catalogsync.WithSchedulerLogger(log),
		)
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoContext(gctx, "starting psp catalog", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if sched != nil {
		g.Go(func() error {
			return sched.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.InfoContext(shutdownCtx, "shutting down psp catalog")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if a.syncer != nil {
			a.syncer.Wait()
		}
		return nil
	})

	return g.Wait()
}
