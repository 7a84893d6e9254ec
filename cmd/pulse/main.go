package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	corecfg "github.com/aevon-lab/merchant-pulse/internal/core/config"
	"github.com/aevon-lab/merchant-pulse/internal/core/storage/postgres"
	"github.com/aevon-lab/merchant-pulse/internal/migrations"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pulse",
		Short:         "Merchant Pulse - merchant activity ingestion and analytics",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", corecfg.DefaultConfigPath, "Path to configuration file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(migrateCmd())

	return rootCmd
}

// loadConfig reads the config named by --config and installs the default logger.
// A .env file in the working directory, when present, feeds the PULSE_ overrides.
func loadConfig(cmd *cobra.Command) (*corecfg.Config, error) {
	_ = godotenv.Load()

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := corecfg.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.SetDefault(newLogger(os.Stdout, cfg.Logging))
	slog.Info("Loaded config",
		"path", path,
		"server", cfg.Server.Addr(),
		"data_dir", cfg.Ingestion.DataDir,
		"batch_size", cfg.Ingestion.BatchSize,
		"query_timeout", cfg.Database.QueryTimeout)
	return cfg, nil
}

func newLogger(w io.Writer, cfg corecfg.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openStore opens the pool, applies migrations and prepares the adapter.
func openStore(cfg *corecfg.Config) (*postgres.Adapter, error) {
	db, err := postgres.OpenDB(cfg.Database.DSN, postgres.PoolOptions{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	adapter, err := postgres.NewAdapter(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return adapter, nil
}
