package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// migrationLockID serializes schema migration across replicas starting at
// the same time.
const migrationLockID = 7421398402

const schema = `
CREATE TABLE IF NOT EXISTS assistant_faq_entries (
    question   TEXT PRIMARY KEY,
    answer     TEXT NOT NULL,
    confidence DOUBLE PRECISION NOT NULL DEFAULT 1.0,
    keywords   TEXT[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// PostgresStore reads platform data (tenders, bids, alerts) owned and
// migrated by the core services, and owns the assistant_faq_entries table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool, verifies connectivity and runs
// the FAQ table migration. It never touches the platform tables' schema.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", migrationLockID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CountTenders(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tenders").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tenders: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) CountActiveBids(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bids WHERE status = 'active'").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active bids: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) CountSuspiciousBids(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bids WHERE is_suspicious").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count suspicious bids: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) RecentAlerts(ctx context.Context, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, alert_type, message, created_at FROM alerts ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.Kind, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// ListFAQEntries returns persisted entries oldest first, so replaying them
// into the in-memory store reproduces the order they were first added in.
func (s *PostgresStore) ListFAQEntries(ctx context.Context) ([]FAQRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT question, answer, confidence, keywords FROM assistant_faq_entries ORDER BY created_at, question")
	if err != nil {
		return nil, fmt.Errorf("query faq entries: %w", err)
	}
	defer rows.Close()

	var recs []FAQRecord
	for rows.Next() {
		var rec FAQRecord
		if err := rows.Scan(&rec.Question, &rec.Answer, &rec.Confidence, pq.Array(&rec.Keywords)); err != nil {
			return nil, fmt.Errorf("scan faq entry: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// UpsertFAQEntry inserts or replaces an entry by question. The row's
// created_at is kept on conflict, preserving its original position in
// ListFAQEntries.
func (s *PostgresStore) UpsertFAQEntry(ctx context.Context, rec FAQRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assistant_faq_entries (question, answer, confidence, keywords)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (question) DO UPDATE SET
			answer = EXCLUDED.answer,
			confidence = EXCLUDED.confidence,
			keywords = EXCLUDED.keywords`,
		rec.Question, rec.Answer, rec.Confidence, pq.Array(rec.Keywords))
	if err != nil {
		return fmt.Errorf("upsert faq entry: %w", err)
	}
	return nil
}
