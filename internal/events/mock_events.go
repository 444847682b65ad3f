package events

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPublisher implements Publisher for tests.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, ev Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
