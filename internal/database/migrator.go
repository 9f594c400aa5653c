// Package database owns the schema: embedded migrations and the start-up
// checks that run them.
package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	maxRetries    = 10
	retryInterval = 2 * time.Second
)

// SetConnectRetries changes how many pings WaitForDatabase makes before it
// gives up. Values below 1 are ignored.
func SetConnectRetries(n int) {
	if n > 0 {
		maxRetries = n
	}
}

// MigrationRunner applies the embedded migrations to one database.
type MigrationRunner struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewMigrationRunner(db *sql.DB, logger *slog.Logger) *MigrationRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &MigrationRunner{db: db, logger: logger}
}

// WaitForDatabase pings until the database answers, ctx ends or the retries
// run out.
func (mr *MigrationRunner) WaitForDatabase(ctx context.Context) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = mr.db.PingContext(ctx); err == nil {
			mr.logger.Info("Database is ready")
			return nil
		}

		mr.logger.Warn("Database not ready",
			slog.Int("attempt", i+1),
			slog.Int("max_attempts", maxRetries),
			slog.String("error", err.Error()),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return fmt.Errorf("database not ready after %d attempts: %w", maxRetries, err)
}

func (mr *MigrationRunner) newMigrate() (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(mr.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

// RunMigrations applies every pending migration. A dirty database is forced
// back to its recorded version first so the failed step is retried.
func (mr *MigrationRunner) RunMigrations() error {
	m, err := mr.newMigrate()
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		mr.logger.Warn("Database is in dirty state, forcing version", slog.Uint64("version", uint64(version)))
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mr.logger.Info("No new migrations to apply", slog.Uint64("version", uint64(version)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	newVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get new migration version: %w", err)
	}
	mr.logger.Info("Applied migrations", slog.Uint64("version", uint64(newVersion)))
	return nil
}

// Status reports the current schema version.
func (mr *MigrationRunner) Status() (version uint, dirty bool, err error) {
	m, err := mr.newMigrate()
	if err != nil {
		return 0, false, err
	}
	return m.Version()
}
