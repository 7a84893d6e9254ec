package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var MigrationFiles embed.FS

// Status describes the schema version recorded in schema_migrations.
type Status struct {
	Version uint
	Dirty   bool
	// Applied is false when no migration has ever run.
	Applied bool
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(MigrationFiles, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func currentStatus(m *migrate.Migrate) (Status, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("failed to get current migration version: %w", err)
	}
	return Status{Version: version, Dirty: dirty, Applied: true}, nil
}

// RunMigrations brings merchant_activities up to the latest embedded version.
// With autoMigrate false it only reports the current version.
// A dirty state left by an interrupted run is forced back to its recorded
// version first; every migration here is idempotent DDL guarded by IF NOT EXISTS.
func RunMigrations(db *sql.DB, autoMigrate bool) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	before, err := currentStatus(m)
	if err != nil {
		return err
	}

	if before.Dirty {
		slog.Warn("[Migrations] Dirty schema state, forcing recorded version",
			"version", before.Version)
		if err := m.Force(int(before.Version)); err != nil {
			return fmt.Errorf("failed to recover dirty migration state at version %d: %w", before.Version, err)
		}
	}

	if !autoMigrate {
		slog.Info("[Migrations] Auto-migration disabled",
			"current_version", before.Version,
			"applied", before.Applied)
		return nil
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("[Migrations] Schema is up to date", "version", before.Version)
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	after, err := currentStatus(m)
	if err != nil {
		return err
	}

	slog.Info("[Migrations] Applied",
		"from_version", before.Version,
		"to_version", after.Version)
	return nil
}

// Down rolls back every embedded migration. Used by `pulse migrate down`.
func Down(db *sql.DB) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	slog.Info("[Migrations] Rolled back all migrations")
	return nil
}

// CurrentStatus reports the applied schema version without changing it.
func CurrentStatus(db *sql.DB) (Status, error) {
	m, err := newMigrator(db)
	if err != nil {
		return Status{}, err
	}
	return currentStatus(m)
}
