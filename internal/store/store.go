package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Alert is a platform alert row, raised when the anomaly detector or audit
// pipeline flags activity worth surfacing to operators.
type Alert struct {
	ID        uuid.UUID
	Kind      string
	Message   string
	CreatedAt time.Time
}

// FAQRecord is a persisted knowledge-base entry. Question holds the
// normalized key; Keywords mirror its whitespace tokens for operators
// querying the table directly.
type FAQRecord struct {
	Question   string
	Answer     string
	Confidence float64
	Keywords   []string
}

// Store exposes the platform reads the assistant folds into conversation
// context: aggregate tender/bid figures and the most recent alerts.
type Store interface {
	CountTenders(ctx context.Context) (int, error)
	CountActiveBids(ctx context.Context) (int, error)
	CountSuspiciousBids(ctx context.Context) (int, error)
	RecentAlerts(ctx context.Context, limit int) ([]Alert, error)
}

// FAQRepository persists knowledge-base entries so runtime additions survive
// restarts. The in-memory FAQ store remains the source of truth during
// resolution; the repository is hydrated from and written through here.
type FAQRepository interface {
	ListFAQEntries(ctx context.Context) ([]FAQRecord, error)
	UpsertFAQEntry(ctx context.Context, rec FAQRecord) error
}
