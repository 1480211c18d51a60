package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Register the pgx and sqlite3 database/sql drivers.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Supported driver names, as registered with database/sql.
const (
	DriverPgx     = "pgx"
	DriverSQLite3 = "sqlite3"
)

// Open opens and pings a database with one of the supported drivers.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}
	switch driver {
	case DriverPgx, DriverSQLite3:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == DriverSQLite3 {
		// A single connection keeps in-memory databases shared and avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Close closes db, logging any error.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("Error closing database", slog.String("error", err.Error()))
		return
	}
	logger.Info("Database connection closed.")
}
