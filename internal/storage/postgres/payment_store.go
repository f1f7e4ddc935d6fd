package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"dividend-lab/internal/domain"
	"dividend-lab/internal/storage"
)

// PaymentStore implements storage.PaymentStore using PostgreSQL.
type PaymentStore struct {
	pool *Pool
}

// NewPaymentStore creates a new PaymentStore.
func NewPaymentStore(pool *Pool) *PaymentStore {
	return &PaymentStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PaymentStore = (*PaymentStore)(nil)

const insertPaymentQuery = `
	INSERT INTO dividend_payments (
		id, ticker, ex_date, raw_amount, adj_amount, is_manual, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// Insert adds a new payment. Returns ErrDuplicateKey if the ID exists.
func (s *PaymentStore) Insert(ctx context.Context, p *domain.DividendPayment) error {
	_, err := s.pool.Exec(ctx, insertPaymentQuery,
		p.ID,
		p.Ticker,
		p.ExDate,
		p.RawAmount,
		p.AdjAmount,
		p.IsManual,
		p.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// InsertBulk adds multiple payments atomically. Fails entire batch on any duplicate.
func (s *PaymentStore) InsertBulk(ctx context.Context, payments []*domain.DividendPayment) error {
	if len(payments) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range payments {
		_, err := tx.Exec(ctx, insertPaymentQuery,
			p.ID,
			p.Ticker,
			p.ExDate,
			p.RawAmount,
			p.AdjAmount,
			p.IsManual,
			p.CreatedAt,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert payment in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByTicker retrieves all payments for a ticker, ordered by ex-date ASC.
func (s *PaymentStore) GetByTicker(ctx context.Context, ticker string) ([]*domain.DividendPayment, error) {
	query := `
		SELECT id, ticker, ex_date, raw_amount, adj_amount, is_manual, created_at
		FROM dividend_payments
		WHERE ticker = $1
		ORDER BY ex_date ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("get payments by ticker: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// GetByDateRange retrieves a ticker's payments with ex-date in [start, end] (inclusive).
func (s *PaymentStore) GetByDateRange(ctx context.Context, ticker string, start, end time.Time) ([]*domain.DividendPayment, error) {
	query := `
		SELECT id, ticker, ex_date, raw_amount, adj_amount, is_manual, created_at
		FROM dividend_payments
		WHERE ticker = $1 AND ex_date >= $2 AND ex_date <= $3
		ORDER BY ex_date ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, ticker, start, end)
	if err != nil {
		return nil, fmt.Errorf("get payments by date range: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// scanPayments scans multiple rows into a slice of DividendPayment.
func scanPayments(rows pgx.Rows) ([]*domain.DividendPayment, error) {
	var payments []*domain.DividendPayment

	for rows.Next() {
		var p domain.DividendPayment

		err := rows.Scan(
			&p.ID,
			&p.Ticker,
			&p.ExDate,
			&p.RawAmount,
			&p.AdjAmount,
			&p.IsManual,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}

		p.ExDate = domain.Day(p.ExDate)
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}

	return payments, nil
}
