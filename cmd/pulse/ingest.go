package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/merchant-pulse/internal/ingestion"
	"github.com/spf13/cobra"
)

func ingestCmd() *cobra.Command {
	var (
		dataDir  string
		progress bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run one ingestion pass over the data directory and print the file summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.Ingestion.DataDir = dataDir
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			adapter, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer adapter.Close()

			opts := ingestion.RunnerOptions{
				DataDir:         cfg.Ingestion.DataDir,
				FilePattern:     cfg.Ingestion.FilePattern,
				BatchSize:       cfg.Ingestion.BatchSize,
				DedupMaxEntries: cfg.Ingestion.DedupMaxEntries,
				SkipIfLoaded:    cfg.Ingestion.SkipIfLoaded,
				WriteTimeout:    cfg.Database.QueryTimeout,
			}
			var bar *progressObserver
			if progress {
				bar = newProgressObserver(cmd.ErrOrStderr())
				opts.Observer = bar
			}

			summaries, err := ingestion.NewRunner(adapter, opts).Run(ctx)
			if bar != nil {
				bar.finish()
			}
			if err != nil {
				return err
			}
			return printSummaries(cmd.OutOrStdout(), summaries)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Override ingestion.data_dir")
	cmd.Flags().BoolVar(&progress, "progress", true, "Show a row counter on stderr")
	return cmd
}

// printSummaries writes the summaries as indented JSON and fails when any file failed.
func printSummaries(w io.Writer, summaries []ingestion.RunSummary) error {
	if summaries == nil {
		summaries = []ingestion.RunSummary{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summaries); err != nil {
		return fmt.Errorf("failed to write summaries: %w", err)
	}

	failed := 0
	for _, s := range summaries {
		if s.State == ingestion.StateFailed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(summaries))
	}
	return nil
}
