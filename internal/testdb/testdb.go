package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/users-api/internal/config"
	"github.com/phrazzld/users-api/internal/platform/database"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds each setup step against the test database.
const TestTimeout = 10 * time.Second

// Environment variables consulted for the test database URL, in order.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvTestDBURL   = "USERS_TEST_DB_URL"
)

// GetTestDatabaseURL returns the first non-empty test database URL.
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvDatabaseURL, EnvTestDBURL} {
		if url := os.Getenv(name); url != "" {
			return url
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestDBWithT opens the test database, applies migrations and registers
// cleanup. The test is skipped when no database is configured.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	if ShouldSkipDatabaseTest() {
		t.Skipf("%s not set - skipping PostgreSQL integration test", EnvDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := database.Open(ctx, config.DriverPostgres, GetTestDatabaseURL())
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, database.Migrate(ctx, db, config.DriverPostgres, "up", logger),
		"failed to migrate test database")

	return db
}

// ResetUsers removes every user.
func ResetUsers(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	_, err := db.ExecContext(ctx, "TRUNCATE TABLE users")
	require.NoError(t, err, "failed to truncate users")
}

// WithTx runs fn inside a transaction that is rolled back afterwards.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
