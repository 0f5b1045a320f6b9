// Package database handles the connection to the SQL datastore and all row access
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/rolodex/internal/config"
)

// InitDB opens the configured datastore, applies connection settings and runs
// migrations. With the sqlite driver and no DSN the database lives in
// ~/.rolodex/rolodex.db.
func InitDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, 0, err
	}

	dsn := cfg.DSN
	if dialect == DialectSQLite && dsn == "" {
		dataDir, err := config.DataDir()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get data directory: %w", err)
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, 0, fmt.Errorf("failed to create directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "rolodex.db")
	}
	if dsn == "" {
		return nil, 0, fmt.Errorf("database dsn is required for driver %s", dialect.DriverName())
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == DialectSQLite {
		if err := configureSQLite(ctx, db); err != nil {
			closeQuietly(db)
			return nil, 0, err
		}
	}

	if err := db.PingContext(ctx); err != nil {
		closeQuietly(db)
		return nil, 0, fmt.Errorf("database ping failed: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		closeQuietly(db)
		return nil, 0, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, dialect, nil
}

func configureSQLite(ctx context.Context, db *sql.DB) error {
	// SQLite benefits from a single writer connection, and the pragmas below
	// are per connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		// Required for ON DELETE CASCADE / SET NULL
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		// SQLite will retry for this duration
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			slog.Error("failed to apply pragma", "pragma", pragma, "error", err)
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	return nil
}

func closeQuietly(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing db", "error", err)
	}
}
