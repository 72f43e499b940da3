package api

import (
	"context"

	"github.com/phrazzld/users-api/internal/domain"
)

// MockUserService is a mock implementation of service.UserService for testing
type MockUserService struct {
	ListUsersFn  func(ctx context.Context) ([]domain.User, error)
	CreateUserFn func(ctx context.Context, name, email string) (*domain.User, error)
	CountUsersFn func(ctx context.Context) (int, error)
}

// ListUsers implements service.UserService
func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx)
	}
	return []domain.User{}, nil
}

// CreateUser implements service.UserService
func (m *MockUserService) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, name, email)
	}
	return domain.NewUser(1, name, email), nil
}

// CountUsers implements service.UserService
func (m *MockUserService) CountUsers(ctx context.Context) (int, error) {
	if m.CountUsersFn != nil {
		return m.CountUsersFn(ctx)
	}
	return 0, nil
}
