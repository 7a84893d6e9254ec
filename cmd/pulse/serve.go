package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/merchant-pulse/internal/analytics"
	corecfg "github.com/aevon-lab/merchant-pulse/internal/core/config"
	"github.com/aevon-lab/merchant-pulse/internal/ingestion"
	"github.com/aevon-lab/merchant-pulse/internal/metrics"
	"github.com/aevon-lab/merchant-pulse/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and load the data directory in the background",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *corecfg.Config) error {
	adapter, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer adapter.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runnerOpts := ingestion.RunnerOptions{
		DataDir:         cfg.Ingestion.DataDir,
		FilePattern:     cfg.Ingestion.FilePattern,
		BatchSize:       cfg.Ingestion.BatchSize,
		DedupMaxEntries: cfg.Ingestion.DedupMaxEntries,
		SkipIfLoaded:    cfg.Ingestion.SkipIfLoaded,
		WriteTimeout:    cfg.Database.QueryTimeout,
	}
	analyticsOpts := analytics.Options{QueryTimeout: cfg.Database.QueryTimeout}

	var middleware []gin.HandlerFunc
	var m *metrics.Metrics
	reg := metrics.NewRegistry()
	if cfg.Metrics.Enabled {
		m = metrics.New(reg)
		middleware = append(middleware, m.GinMiddleware())
		runnerOpts.Observer = m
		analyticsOpts.Observer = m
	}

	srv := server.New(cfg.Server.Addr(), cfg.Server.Mode, adapter, middleware...)
	if m != nil {
		srv.Engine.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler(reg)))
	}

	analytics.NewService(adapter, analyticsOpts).RegisterRoutes(srv.Engine)

	runner := ingestion.NewRunner(adapter, runnerOpts)
	ingestion.NewHandler(runner).RegisterRoutes(srv.Engine)

	ingestDone := make(chan struct{})
	if cfg.Ingestion.Enabled {
		go func() {
			defer close(ingestDone)
			if _, err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("Ingestion pass failed", "error", err)
			}
		}()
	} else {
		close(ingestDone)
		slog.Info("Ingestion disabled by config")
	}

	// HTTP server blocks until ctx is cancelled.
	err = srv.Run(ctx)
	cancel()
	<-ingestDone
	if err != nil {
		slog.Error("Server stopped with error", "error", err)
		return err
	}

	slog.Info("Shutdown complete")
	return nil
}
