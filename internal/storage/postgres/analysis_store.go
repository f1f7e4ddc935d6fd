package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"dividend-lab/internal/domain"
	"dividend-lab/internal/storage"
)

// AnalysisStore implements storage.AnalysisStore using PostgreSQL.
type AnalysisStore struct {
	pool *Pool
}

// NewAnalysisStore creates a new AnalysisStore.
func NewAnalysisStore(pool *Pool) *AnalysisStore {
	return &AnalysisStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AnalysisStore = (*AnalysisStore)(nil)

// ReplaceByTicker atomically replaces the ticker's full analysis set.
// Delete plus insert in one transaction keeps re-runs idempotent.
func (s *AnalysisStore) ReplaceByTicker(ctx context.Context, ticker string, analyzed []*domain.AnalyzedPayment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM analyzed_payments WHERE ticker = $1`, ticker); err != nil {
		return fmt.Errorf("delete analysis for ticker: %w", err)
	}

	query := `
		INSERT INTO analyzed_payments (
			payment_id, ticker, ex_date, amount, days_since_prev,
			pmt_type, frequency_num, frequency_label, annualized, normalized_div, computed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, ap := range analyzed {
		_, err := tx.Exec(ctx, query,
			ap.PaymentID,
			ap.Ticker,
			ap.ExDate,
			ap.Amount,
			ap.DaysSincePrev,
			string(ap.Type),
			ap.FrequencyNum,
			ap.FrequencyLabel,
			ap.Annualized,
			ap.NormalizedDiv,
			ap.ComputedAt,
		)
		if err != nil {
			return fmt.Errorf("insert analyzed payment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByTicker retrieves the ticker's analysis, ordered by ex-date ASC.
func (s *AnalysisStore) GetByTicker(ctx context.Context, ticker string) ([]*domain.AnalyzedPayment, error) {
	query := `
		SELECT payment_id, ticker, ex_date, amount, days_since_prev,
		       pmt_type, frequency_num, frequency_label, annualized, normalized_div, computed_at
		FROM analyzed_payments
		WHERE ticker = $1
		ORDER BY ex_date ASC, payment_id ASC
	`

	rows, err := s.pool.Query(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("get analysis by ticker: %w", err)
	}
	defer rows.Close()

	return scanAnalyzed(rows)
}

// GetByDateRange retrieves analysis rows with ex-date in [start, end] (inclusive).
func (s *AnalysisStore) GetByDateRange(ctx context.Context, ticker string, start, end time.Time) ([]*domain.AnalyzedPayment, error) {
	query := `
		SELECT payment_id, ticker, ex_date, amount, days_since_prev,
		       pmt_type, frequency_num, frequency_label, annualized, normalized_div, computed_at
		FROM analyzed_payments
		WHERE ticker = $1 AND ex_date >= $2 AND ex_date <= $3
		ORDER BY ex_date ASC, payment_id ASC
	`

	rows, err := s.pool.Query(ctx, query, ticker, start, end)
	if err != nil {
		return nil, fmt.Errorf("get analysis by date range: %w", err)
	}
	defer rows.Close()

	return scanAnalyzed(rows)
}

// scanAnalyzed scans multiple rows into a slice of AnalyzedPayment.
func scanAnalyzed(rows pgx.Rows) ([]*domain.AnalyzedPayment, error) {
	var result []*domain.AnalyzedPayment

	for rows.Next() {
		var ap domain.AnalyzedPayment
		var pmtType string

		err := rows.Scan(
			&ap.PaymentID,
			&ap.Ticker,
			&ap.ExDate,
			&ap.Amount,
			&ap.DaysSincePrev,
			&pmtType,
			&ap.FrequencyNum,
			&ap.FrequencyLabel,
			&ap.Annualized,
			&ap.NormalizedDiv,
			&ap.ComputedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan analyzed payment row: %w", err)
		}

		ap.Type = domain.PaymentType(pmtType)
		ap.ExDate = domain.Day(ap.ExDate)
		result = append(result, &ap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyzed payment rows: %w", err)
	}

	return result, nil
}
