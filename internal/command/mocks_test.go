package command

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/userdirectory/user-service/shared/models"
)

type MockUserWriter struct {
	mock.Mock
}

func (m *MockUserWriter) Create(ctx context.Context, fields map[string]any) (*models.User, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserWriter) Update(ctx context.Context, id string, fields map[string]any) (*models.User, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserWriter) Delete(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockUserViewWriter struct {
	mock.Mock
}

func (m *MockUserViewWriter) CacheUserView(ctx context.Context, user *models.User) {
	m.Called(ctx, user)
}

func (m *MockUserViewWriter) InvalidateUserView(ctx context.Context, userID string) {
	m.Called(ctx, userID)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	args := m.Called(ctx, stream, eventType, data)
	return args.Error(0)
}
