package service

import (
	"context"

	"github.com/phrazzld/users-api/internal/domain"
	"github.com/phrazzld/users-api/internal/events"
	"github.com/stretchr/testify/mock"
)

// MockUserStore mocks store.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) ListAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserStore) Add(ctx context.Context, name, email string) (*domain.User, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockEventEmitter mocks events.EventEmitter
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
