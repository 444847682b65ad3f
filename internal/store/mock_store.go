package store

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore implements Store for tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CountTenders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) CountActiveBids(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) CountSuspiciousBids(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) RecentAlerts(ctx context.Context, limit int) ([]Alert, error) {
	args := m.Called(ctx, limit)
	if alerts, ok := args.Get(0).([]Alert); ok {
		return alerts, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockFAQRepository implements FAQRepository for tests.
type MockFAQRepository struct {
	mock.Mock
}

func (m *MockFAQRepository) ListFAQEntries(ctx context.Context) ([]FAQRecord, error) {
	args := m.Called(ctx)
	if recs, ok := args.Get(0).([]FAQRecord); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFAQRepository) UpsertFAQEntry(ctx context.Context, rec FAQRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
