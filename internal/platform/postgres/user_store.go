package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/users-api/internal/domain"
	"github.com/phrazzld/users-api/internal/store"
)

const (
	listUsersQuery  = `SELECT identifier, name, email FROM users ORDER BY identifier`
	countUsersQuery = `SELECT COUNT(*) FROM users`

	// SHARE ROW EXCLUSIVE conflicts with itself, so concurrent adders queue
	// on the lock while readers proceed.
	lockUsersQuery = `LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE`

	insertUserQuery = `INSERT INTO users (identifier, name, email)
SELECT COUNT(*) + 1, $1, $2 FROM users
RETURNING identifier`
)

// PostgresUserStore implements store.UserStore on a PostgreSQL database.
type PostgresUserStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a PostgreSQL user store. The connection is
// owned and closed by the caller.
func NewPostgresUserStore(db *sql.DB, logger *slog.Logger) *PostgresUserStore {
	return &PostgresUserStore{
		db:     db,
		logger: logger.With("component", "postgres_user_store"),
	}
}

// ListAll implements store.UserStore.ListAll
func (s *PostgresUserStore) ListAll(ctx context.Context) ([]domain.User, error) {
	return listUsers(ctx, s.db)
}

// Add implements store.UserStore.Add. The table lock and the insert run in
// one transaction so the count the identifier is derived from cannot change
// underneath it.
func (s *PostgresUserStore) Add(ctx context.Context, name, email string) (*domain.User, error) {
	var identifier int
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, lockUsersQuery); err != nil {
			return MapError(err)
		}
		if err := tx.QueryRowContext(ctx, insertUserQuery, name, email).Scan(&identifier); err != nil {
			return MapError(err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to add user", "error", err)
		return nil, store.NewStoreError("user", "add", "failed to insert user", err)
	}

	s.logger.Debug("user inserted", "identifier", identifier)
	return domain.NewUser(identifier, name, email), nil
}

// Count implements store.UserStore.Count
func (s *PostgresUserStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countUsersQuery).Scan(&n); err != nil {
		return 0, store.NewStoreError("user", "count", "failed to count users", MapError(err))
	}
	return n, nil
}

func listUsers(ctx context.Context, q store.DBTX) ([]domain.User, error) {
	rows, err := q.QueryContext(ctx, listUsersQuery)
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
		return nil, store.NewStoreError("user", "list", "failed to iterate users", fmt.Errorf("rows: %w", err))
	}

	return users, nil
}
