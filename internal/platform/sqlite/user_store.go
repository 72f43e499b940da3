// Package sqlite provides the SQLite implementation of store.UserStore,
// for single-node deployments that need users to survive restarts.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-sqlite3"
	"github.com/phrazzld/users-api/internal/domain"
	"github.com/phrazzld/users-api/internal/store"
)

const (
	listUsersQuery  = `SELECT identifier, name, email FROM users ORDER BY identifier`
	countUsersQuery = `SELECT COUNT(*) FROM users`

	// A single statement is atomic in SQLite, so the count and the insert
	// cannot interleave with another writer.
	insertUserQuery = `INSERT INTO users (identifier, name, email)
SELECT COUNT(*) + 1, ?, ? FROM users
RETURNING identifier`
)

// SQLiteUserStore implements store.UserStore on a SQLite database.
type SQLiteUserStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.UserStore = (*SQLiteUserStore)(nil)

// NewSQLiteUserStore creates a SQLite user store. The connection is owned
// and closed by the caller.
func NewSQLiteUserStore(db *sql.DB, logger *slog.Logger) *SQLiteUserStore {
	return &SQLiteUserStore{
		db:     db,
		logger: logger.With("component", "sqlite_user_store"),
	}
}

// ListAll implements store.UserStore.ListAll.
func (s *SQLiteUserStore) ListAll(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, listUsersQuery)
	if err != nil {
		return nil, store.NewStoreError("user", "list", "failed to query users", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Identifier, &u.Name, &u.Email); err != nil {
			return nil, store.NewStoreError("user", "list", "failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "list", "failed to iterate users", err)
	}
	return users, nil
}

// Add implements store.UserStore.Add.
func (s *SQLiteUserStore) Add(ctx context.Context, name, email string) (*domain.User, error) {
	var identifier int
	if err := s.db.QueryRowContext(ctx, insertUserQuery, name, email).Scan(&identifier); err != nil {
		s.logger.Error("failed to add user", "error", err)
		return nil, store.NewStoreError("user", "add", "failed to insert user", MapError(err))
	}

	s.logger.Debug("user inserted", "identifier", identifier)
	return domain.NewUser(identifier, name, email), nil
}

// Count implements store.UserStore.Count.
func (s *SQLiteUserStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countUsersQuery).Scan(&n); err != nil {
		return 0, store.NewStoreError("user", "count", "failed to count users", MapError(err))
	}
	return n, nil
}

// MapError maps a SQLite driver error to the matching store error.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return fmt.Errorf("%w: %v", store.ErrIdentifierExists, err)
		default:
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	return err
}
