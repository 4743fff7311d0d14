package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pspcatalog/internal/platform/config"
	"pspcatalog/internal/platform/logger"
)

func syncCmd() *cobra.Command {
	var pageSize int
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one catalog sync against the upstream feed and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if pageSize > 0 {
				cfg.Sync.PageSize = pageSize
			}
			return runSync(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "feed page size (overrides PSP_SYNC_PAGE_SIZE)")
	return cmd
}

func runSync(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.Feed.Enabled() {
		return errors.New("PSP_FEED_BASE_URL is required for sync")
	}

	log := logger.New(cfg.Server.LogLevel)
	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	report, err := a.syncer.TryRun(ctx)
	if err != nil {
		return fmt.Errorf("catalog sync: %w", err)
	}
	fmt.Printf("run %s %s: %d pages, %d merged, %d skipped in %s\n",
		report.RunID, report.State, report.PagesFetched, report.Merged, report.Skipped, report.Duration())
	return nil
}
