package postgres

import (
	"context"
	"fmt"

	"dividend-lab/internal/domain"
	"dividend-lab/internal/storage"
)

// BackfillProgressStore implements storage.BackfillProgressStore using PostgreSQL.
type BackfillProgressStore struct {
	pool *Pool
}

// NewBackfillProgressStore creates a new BackfillProgressStore.
func NewBackfillProgressStore(pool *Pool) *BackfillProgressStore {
	return &BackfillProgressStore{pool: pool}
}

// Compile-time interface check.
var _ storage.BackfillProgressStore = (*BackfillProgressStore)(nil)

// Get retrieves progress for a ticker. Returns ErrNotFound if never backfilled.
func (s *BackfillProgressStore) Get(ctx context.Context, ticker string) (*domain.BackfillProgress, error) {
	query := `
		SELECT ticker, last_ex_date, last_run_at, payments_sum
		FROM backfill_progress
		WHERE ticker = $1
	`

	var p domain.BackfillProgress
	err := s.pool.QueryRow(ctx, query, ticker).Scan(
		&p.Ticker,
		&p.LastExDate,
		&p.LastRunAt,
		&p.PaymentsSum,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get backfill progress: %w", err)
	}

	return &p, nil
}

// Upsert creates or updates a ticker's progress.
func (s *BackfillProgressStore) Upsert(ctx context.Context, p *domain.BackfillProgress) error {
	query := `
		INSERT INTO backfill_progress (ticker, last_ex_date, last_run_at, payments_sum)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ticker) DO UPDATE SET
			last_ex_date = EXCLUDED.last_ex_date,
			last_run_at = EXCLUDED.last_run_at,
			payments_sum = EXCLUDED.payments_sum
	`

	_, err := s.pool.Exec(ctx, query, p.Ticker, p.LastExDate, p.LastRunAt, p.PaymentsSum)
	if err != nil {
		return fmt.Errorf("upsert backfill progress: %w", err)
	}
	return nil
}
