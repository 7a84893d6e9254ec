package main

import (
	"database/sql"
	"fmt"

	"github.com/aevon-lab/merchant-pulse/internal/core/storage/postgres"
	"github.com/aevon-lab/merchant-pulse/internal/migrations"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the merchant_activities schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(db *sql.DB) error {
				return migrations.RunMigrations(db, true)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back every migration, dropping merchant_activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, migrations.Down)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(db *sql.DB) error {
				status, err := migrations.CurrentStatus(db)
				if err != nil {
					return err
				}
				if !status.Applied {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", status.Version, status.Dirty)
				return nil
			})
		},
	})

	return cmd
}

func withDB(cmd *cobra.Command, fn func(db *sql.DB) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := postgres.OpenDB(cfg.Database.DSN, postgres.PoolOptions{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	return fn(db)
}
