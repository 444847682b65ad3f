package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client using testify/mock.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Respond(ctx context.Context, message, contextBlock string) (string, error) {
	args := m.Called(ctx, message, contextBlock)
	return args.String(0), args.Error(1)
}
