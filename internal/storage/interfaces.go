package storage

import (
	"context"
	"time"

	"dividend-lab/internal/domain"
)

// PaymentStore provides access to dividend_payments storage.
// Raw payments are append-only; corrections arrive as new records and are
// reconciled by the analysis engine, never by updates in place.
type PaymentStore interface {
	// Insert adds a new payment. Returns ErrDuplicateKey if the ID exists.
	Insert(ctx context.Context, p *domain.DividendPayment) error

	// InsertBulk adds multiple payments atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, payments []*domain.DividendPayment) error

	// GetByTicker retrieves all payments for a ticker, ordered by ex-date ASC.
	GetByTicker(ctx context.Context, ticker string) ([]*domain.DividendPayment, error)

	// GetByDateRange retrieves a ticker's payments with ex-date in [start, end] (inclusive).
	GetByDateRange(ctx context.Context, ticker string, start, end time.Time) ([]*domain.DividendPayment, error)
}

// AnalysisStore provides access to analyzed_payments storage.
// The engine emits a complete replacement set per ticker on every run, so the
// write path swaps the ticker's rows wholesale.
type AnalysisStore interface {
	// ReplaceByTicker atomically replaces the ticker's full analysis set.
	ReplaceByTicker(ctx context.Context, ticker string, analyzed []*domain.AnalyzedPayment) error

	// GetByTicker retrieves the ticker's analysis, ordered by ex-date ASC.
	GetByTicker(ctx context.Context, ticker string) ([]*domain.AnalyzedPayment, error)

	// GetByDateRange retrieves analysis rows with ex-date in [start, end] (inclusive).
	GetByDateRange(ctx context.Context, ticker string, start, end time.Time) ([]*domain.AnalyzedPayment, error)
}

// BackfillProgressStore tracks per-ticker ingestion resume points.
type BackfillProgressStore interface {
	// Get retrieves progress for a ticker. Returns ErrNotFound if never backfilled.
	Get(ctx context.Context, ticker string) (*domain.BackfillProgress, error)

	// Upsert creates or updates a ticker's progress.
	Upsert(ctx context.Context, p *domain.BackfillProgress) error
}

// NormalizedSeriesStore provides access to the normalized dividend chart feed.
type NormalizedSeriesStore interface {
	// ReplaceByTicker atomically replaces the ticker's normalized series.
	ReplaceByTicker(ctx context.Context, ticker string, points []*domain.NormalizedSeriesPoint) error

	// GetByTicker retrieves the ticker's series, ordered by ex-date ASC.
	GetByTicker(ctx context.Context, ticker string) ([]*domain.NormalizedSeriesPoint, error)
}
