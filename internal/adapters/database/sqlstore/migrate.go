package sqlstore

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/currency_exchange_tracker/pkg/database"
	migrate "github.com/golang-migrate/migrate/v4"
	mdb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies every pending "up" migration. It uses its own connection,
// closed before returning, so the migration driver never pins a pooled one.
func Migrate(ctx context.Context, driver, dsn string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	db, err := database.Open(ctx, driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}

	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	var (
		target mdb.Driver
		name   string
	)
	switch driver {
	case database.DriverPgx:
		target, err = postgres.WithInstance(db, &postgres.Config{})
		name = "postgres"
	case database.DriverSQLite3:
		target, err = sqlite3.WithInstance(db, &sqlite3.Config{})
		name = "sqlite3"
	}
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("could not create %s driver instance for migrations: %w", name, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, name, target)
	if err != nil {
		_ = target.Close()
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()
	// Closing the migrate instance also closes db.
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
