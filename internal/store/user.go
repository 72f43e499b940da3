package store

import (
	"context"

	"github.com/phrazzld/users-api/internal/domain"
)

// UserStore defines the interface for user persistence.
//
// Implementations keep users in insertion order and assign identifiers
// sequentially: the identifier of a new user is the number of users already
// stored plus one. Implementations must serialize Add so that concurrent
// callers never observe duplicate identifiers or lose an append.
type UserStore interface {
	// ListAll returns every stored user in insertion order.
	// The returned slice is owned by the caller and is never nil.
	ListAll(ctx context.Context) ([]domain.User, error)

	// Add stores a new user with the next sequential identifier and returns
	// a copy of it. Empty name and email are accepted.
	Add(ctx context.Context, name, email string) (*domain.User, error)

	// Count returns the number of stored users.
	Count(ctx context.Context) (int, error)
}
