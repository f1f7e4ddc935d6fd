// Package ingestion pulls dividend history from the upstream provider into
// the raw payment store.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dividend-lab/internal/domain"
	"dividend-lab/internal/idhash"
	"dividend-lab/internal/storage"
	"dividend-lab/internal/tiingo"
)

// Source tag recorded into deterministic payment IDs.
const SourceTiingo = "tiingo"

// Default windows for fetching history.
const (
	// DefaultLookback is how far back the first backfill of a ticker reaches.
	DefaultLookback = 10 * 365 * 24 * time.Hour

	// DefaultOverlap is re-fetched before the resume point so corrected
	// records near the boundary are picked up.
	DefaultOverlap = 30 * 24 * time.Hour
)

// DividendSource fetches distributions for a ticker within a date window.
type DividendSource interface {
	GetDividends(ctx context.Context, ticker string, start, end time.Time) ([]*tiingo.Dividend, error)
}

// Backfiller ingests historical dividend data for tickers.
type Backfiller struct {
	source        DividendSource
	paymentStore  storage.PaymentStore
	progressStore storage.BackfillProgressStore
	lookback      time.Duration
	overlap       time.Duration
	logger        *log.Logger
}

// BackfillOptions contains configuration for creating a Backfiller.
type BackfillOptions struct {
	Source        DividendSource
	PaymentStore  storage.PaymentStore
	ProgressStore storage.BackfillProgressStore
	Lookback      time.Duration
	Overlap       time.Duration
	Logger        *log.Logger
}

// NewBackfiller creates a new dividend history backfiller.
func NewBackfiller(opts BackfillOptions) *Backfiller {
	lookback := opts.Lookback
	if lookback == 0 {
		lookback = DefaultLookback
	}
	overlap := opts.Overlap
	if overlap == 0 {
		overlap = DefaultOverlap
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Backfiller{
		source:        opts.Source,
		paymentStore:  opts.PaymentStore,
		progressStore: opts.ProgressStore,
		lookback:      lookback,
		overlap:       overlap,
		logger:        logger,
	}
}

// BackfillResult contains statistics from a backfill operation.
type BackfillResult struct {
	PaymentsIngested  int
	DuplicatesSkipped int
	Duration          time.Duration
}

// BackfillTicker fetches a ticker's distribution history from the resume
// point and appends new payments. Records already ingested in a previous run
// are skipped, not overwritten, so re-runs are safe.
func (b *Backfiller) BackfillTicker(ctx context.Context, ticker string) (*BackfillResult, error) {
	started := time.Now()
	result := &BackfillResult{}

	start, err := b.resumePoint(ctx, ticker)
	if err != nil {
		return nil, err
	}
	end := time.Now()

	dividends, err := b.source.GetDividends(ctx, ticker, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch dividends for %s: %w", ticker, err)
	}

	now := time.Now().UnixMilli()
	var lastExDate int64
	for _, d := range dividends {
		p := &domain.DividendPayment{
			ID:        idhash.ComputePaymentID(ticker, d.ExDate, SourceTiingo),
			Ticker:    ticker,
			ExDate:    d.ExDate,
			RawAmount: d.Amount,
			AdjAmount: d.AdjAmount,
			CreatedAt: now,
		}

		err := b.paymentStore.Insert(ctx, p)
		switch {
		case err == nil:
			result.PaymentsIngested++
		case errors.Is(err, storage.ErrDuplicateKey):
			result.DuplicatesSkipped++
		default:
			return nil, fmt.Errorf("insert payment for %s: %w", ticker, err)
		}

		if ms := d.ExDate.UnixMilli(); ms > lastExDate {
			lastExDate = ms
		}
	}

	if err := b.updateProgress(ctx, ticker, lastExDate, result.PaymentsIngested); err != nil {
		return nil, err
	}

	result.Duration = time.Since(started)
	b.logger.Printf("backfilled %s: %d new, %d duplicates skipped in %v",
		ticker, result.PaymentsIngested, result.DuplicatesSkipped, result.Duration)
	return result, nil
}

// BackfillAll processes multiple tickers, isolating per-ticker failures.
// Returns combined statistics and the per-ticker error messages.
func (b *Backfiller) BackfillAll(ctx context.Context, tickers []string) (*BackfillResult, []string) {
	total := &BackfillResult{}
	var errs []string

	started := time.Now()
	for _, ticker := range tickers {
		if ctx.Err() != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", ticker, ctx.Err()))
			break
		}
		res, err := b.BackfillTicker(ctx, ticker)
		if err != nil {
			b.logger.Printf("backfill %s failed: %v", ticker, err)
			errs = append(errs, fmt.Sprintf("%s: %v", ticker, err))
			continue
		}
		total.PaymentsIngested += res.PaymentsIngested
		total.DuplicatesSkipped += res.DuplicatesSkipped
	}
	total.Duration = time.Since(started)

	return total, errs
}

// resumePoint determines where fetching starts for a ticker.
func (b *Backfiller) resumePoint(ctx context.Context, ticker string) (time.Time, error) {
	progress, err := b.progressStore.Get(ctx, ticker)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return time.Now().Add(-b.lookback), nil
	case err != nil:
		return time.Time{}, fmt.Errorf("load progress for %s: %w", ticker, err)
	case progress.LastExDate == 0:
		return time.Now().Add(-b.lookback), nil
	default:
		return time.UnixMilli(progress.LastExDate).Add(-b.overlap), nil
	}
}

func (b *Backfiller) updateProgress(ctx context.Context, ticker string, lastExDate int64, ingested int) error {
	prev, err := b.progressStore.Get(ctx, ticker)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("load progress for %s: %w", ticker, err)
	}

	progress := &domain.BackfillProgress{Ticker: ticker}
	if prev != nil {
		*progress = *prev
	}
	if lastExDate > progress.LastExDate {
		progress.LastExDate = lastExDate
	}
	progress.LastRunAt = time.Now().UnixMilli()
	progress.PaymentsSum += int64(ingested)

	if err := b.progressStore.Upsert(ctx, progress); err != nil {
		return fmt.Errorf("update progress for %s: %w", ticker, err)
	}
	return nil
}
