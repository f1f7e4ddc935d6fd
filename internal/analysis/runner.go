package analysis

import (
	"context"
	"fmt"
	"log"

	"dividend-lab/internal/storage"
)

// Runner wires the engine to storage: it loads a ticker's raw payments, runs
// the analysis, and publishes the replacement result set and chart series.
type Runner struct {
	paymentStore  storage.PaymentStore
	analysisStore storage.AnalysisStore
	seriesStore   storage.NormalizedSeriesStore
	cfg           Config
	logger        *log.Logger
}

// RunnerOptions configures a Runner. SeriesStore and Logger are optional.
type RunnerOptions struct {
	PaymentStore  storage.PaymentStore
	AnalysisStore storage.AnalysisStore
	SeriesStore   storage.NormalizedSeriesStore
	Config        Config
	Logger        *log.Logger
}

// NewRunner creates a new analysis runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		paymentStore:  opts.PaymentStore,
		analysisStore: opts.AnalysisStore,
		seriesStore:   opts.SeriesStore,
		cfg:           opts.Config,
		logger:        logger,
	}
}

// AnalyzeTicker recomputes one ticker's full analysis.
// Steps:
//  1. Load raw payments from the payment store
//  2. Run the engine (pure, full-history recompute)
//  3. Replace the ticker's analysis set
//  4. Replace the ticker's normalized chart series
func (r *Runner) AnalyzeTicker(ctx context.Context, ticker string) error {
	payments, err := r.paymentStore.GetByTicker(ctx, ticker)
	if err != nil {
		return fmt.Errorf("load payments for %s: %w", ticker, err)
	}

	analyzed, report := Analyze(payments, r.cfg)
	if report.DuplicatesDropped > 0 {
		r.logger.Printf("ticker %s: dropped %d unresolvable duplicate-date records", ticker, report.DuplicatesDropped)
	}

	if err := r.analysisStore.ReplaceByTicker(ctx, ticker, analyzed); err != nil {
		return fmt.Errorf("store analysis for %s: %w", ticker, err)
	}

	if r.seriesStore != nil {
		series := NormalizedSeries(analyzed)
		if err := r.seriesStore.ReplaceByTicker(ctx, ticker, series); err != nil {
			return fmt.Errorf("store normalized series for %s: %w", ticker, err)
		}
	}

	return nil
}

// AnalyzeBatch recomputes multiple tickers, isolating failures so one bad
// ticker never aborts the batch. Returns the per-ticker error messages.
func (r *Runner) AnalyzeBatch(ctx context.Context, tickers []string) []string {
	var errs []string
	for _, ticker := range tickers {
		if ctx.Err() != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", ticker, ctx.Err()))
			return errs
		}
		if err := r.AnalyzeTicker(ctx, ticker); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", ticker, err))
		}
	}
	return errs
}
