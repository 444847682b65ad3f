package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCache implements Cache for tests.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetContext(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(map[string]any); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCache) SetContext(ctx context.Context, stats map[string]any, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *MockCache) RecordUnanswered(ctx context.Context, question string) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockCache) TopUnanswered(ctx context.Context, limit int) ([]UnansweredQuestion, error) {
	args := m.Called(ctx, limit)
	if top, ok := args.Get(0).([]UnansweredQuestion); ok {
		return top, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
