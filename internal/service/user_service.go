package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/users-api/internal/domain"
	"github.com/phrazzld/users-api/internal/events"
	"github.com/phrazzld/users-api/internal/platform/logger"
	"github.com/phrazzld/users-api/internal/store"
)

// UserService provides the user directory use cases.
type UserService interface {
	// ListUsers returns every user in insertion order. Never nil.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser appends a user with the next identifier. Inputs are not
	// validated: empty and duplicate values are accepted.
	CreateUser(ctx context.Context, name, email string) (*domain.User, error)

	// CountUsers returns the number of stored users.
	CountUsers(ctx context.Context) (int, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore    store.UserStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a UserService. userStore and eventEmitter are
// required; a nil logger falls back to slog.Default().
func NewUserService(
	userStore store.UserStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	if userStore == nil {
		return nil, fmt.Errorf("%w: userStore", ErrNilDependency)
	}
	if eventEmitter == nil {
		return nil, fmt.Errorf("%w: eventEmitter", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore:    userStore,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "user_service"),
	}, nil
}

// ListUsers implements UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	users, err := s.userStore.ListAll(ctx)
	if err != nil {
		log.Error("failed to list users", "error", err)
		return nil, NewServiceError("list", "failed to list users", err)
	}
	if users == nil {
		users = []domain.User{}
	}

	log.Debug("listed users", "count", len(users))
	return users, nil
}

// CreateUser implements UserService. The user.created event is published
// after the user is stored; a failing handler is logged and does not fail
// the call.
func (s *UserServiceImpl) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.Add(ctx, name, email)
	if err != nil {
		log.Error("failed to add user", "error", err)
		return nil, NewServiceError("create", "failed to add user", err)
	}

	log.Info("user created", "identifier", user.Identifier)

	event, err := events.NewEvent(events.EventTypeUserCreated, user.ToMap())
	if err != nil {
		log.Error("failed to build user.created event", "error", err, "identifier", user.Identifier)
		return user, nil
	}
	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.Warn("user.created event handler failed", "error", err, "event_id", event.ID)
	}

	return user, nil
}

// CountUsers implements UserService.
func (s *UserServiceImpl) CountUsers(ctx context.Context) (int, error) {
	n, err := s.userStore.Count(ctx)
	if err != nil {
		return 0, NewServiceError("count", "failed to count users", err)
	}
	return n, nil
}
