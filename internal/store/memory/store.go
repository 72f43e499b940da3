// Package memory provides the default, process-local implementation of
// store.UserStore. Users live only as long as the process.
package memory

import (
	"context"
	"sync"

	"github.com/phrazzld/users-api/internal/domain"
	"github.com/phrazzld/users-api/internal/store"
)

// UserStore keeps users in an insertion-ordered slice guarded by a mutex.
type UserStore struct {
	mu    sync.RWMutex
	users []domain.User
}

// Ensure UserStore implements store.UserStore.
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make([]domain.User, 0)}
}

// ListAll implements store.UserStore.ListAll. It returns a copy so callers
// cannot alias the store's backing slice.
func (s *UserStore) ListAll(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// Add implements store.UserStore.Add. Reading the length and appending
// happen under the same lock, so identifiers stay sequential under
// concurrent callers.
func (s *UserStore) Add(ctx context.Context, name, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := domain.NewUser(len(s.users)+1, name, email)
	s.users = append(s.users, *user)
	return user, nil
}

// Count implements store.UserStore.Count.
func (s *UserStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}
