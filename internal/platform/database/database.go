package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	// Registers the "sqlite3" database/sql driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/phrazzld/users-api/internal/config"
)

const pingTimeout = 5 * time.Second

// DriverName returns the database/sql driver registered for a store driver.
func DriverName(storeDriver string) (string, error) {
	switch storeDriver {
	case config.DriverPostgres:
		return "pgx", nil
	case config.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("store driver %q does not use a database", storeDriver)
	}
}

// Open connects to the database for storeDriver, configures the pool, and
// verifies connectivity with a ping.
func Open(ctx context.Context, storeDriver, url string) (*sql.DB, error) {
	driverName, err := DriverName(storeDriver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if storeDriver == config.DriverSQLite {
		// A single connection keeps ":memory:" databases shared and avoids
		// SQLITE_BUSY between pooled writers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
