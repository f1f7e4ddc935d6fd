// Package orchestrator coordinates the batch pipeline:
// backfill -> analysis -> statistics, per ticker.
package orchestrator

import (
	"context"
	"fmt"
	"log"

	"dividend-lab/internal/analysis"
	"dividend-lab/internal/ingestion"
	"dividend-lab/internal/metrics"
	"dividend-lab/internal/observability"
)

// Orchestrator runs the full per-ticker pipeline. Each phase isolates
// per-ticker failures: one bad ticker is recorded and skipped, never fatal.
type Orchestrator struct {
	backfiller *ingestion.Backfiller
	runner     *analysis.Runner
	aggregator *metrics.Aggregator
	metrics    *observability.Metrics
	verbose    bool
	logger     *log.Logger
}

// Options for creating Orchestrator. Backfiller and Metrics are optional:
// without a backfiller the pipeline analyzes already-stored payments, and
// without metrics nothing is instrumented.
type Options struct {
	Backfiller *ingestion.Backfiller
	Runner     *analysis.Runner
	Aggregator *metrics.Aggregator
	Metrics    *observability.Metrics
	Verbose    bool
	Logger     *log.Logger
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		backfiller: opts.Backfiller,
		runner:     opts.Runner,
		aggregator: opts.Aggregator,
		metrics:    opts.Metrics,
		verbose:    opts.Verbose,
		logger:     logger,
	}
}

// RunResult contains results from orchestrator execution.
type RunResult struct {
	TickersProcessed int
	PaymentsIngested int
	TickersAnalyzed  int
	StatsComputed    int
	Errors           []string
}

// Run executes the pipeline for the given tickers.
// Phases:
//  1. Backfill distribution history (optional)
//  2. Recompute each ticker's full analysis
//  3. Compute per-ticker statistics
func (o *Orchestrator) Run(ctx context.Context, tickers []string) (*RunResult, error) {
	result := &RunResult{TickersProcessed: len(tickers)}

	if len(tickers) == 0 {
		return result, nil
	}

	if o.backfiller != nil {
		o.log("Phase 1: Backfilling %d tickers...", len(tickers))
		total, errs := o.backfiller.BackfillAll(ctx, tickers)
		result.PaymentsIngested = total.PaymentsIngested
		result.Errors = append(result.Errors, errs...)
		o.observeIngested(total.PaymentsIngested)
		o.log("  Ingested %d payments (%d errors)", total.PaymentsIngested, len(errs))
	} else {
		o.log("Phase 1: Skipping backfill (no source configured)")
	}

	o.log("Phase 2: Analyzing tickers...")
	for _, ticker := range tickers {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if err := o.analyzeTicker(ctx, ticker); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", ticker, err))
			continue
		}
		result.TickersAnalyzed++
	}
	o.log("  Analyzed %d of %d tickers", result.TickersAnalyzed, len(tickers))

	o.log("Phase 3: Computing statistics...")
	stats, err := o.aggregator.ComputeForTickers(ctx, tickers)
	if err != nil {
		return result, fmt.Errorf("phase 3 (statistics) failed: %w", err)
	}
	result.StatsComputed = len(stats)
	if o.verbose {
		for ticker, s := range stats {
			o.logger.Printf("  %s: %d payments/year, normalized mean %.6f stddev %.6f",
				ticker, s.PaymentsPerYear, s.NormalizedMean, s.NormalizedStddev)
		}
	}

	o.log("Pipeline completed: %d tickers, %d ingested, %d analyzed, %d errors",
		result.TickersProcessed, result.PaymentsIngested, result.TickersAnalyzed, len(result.Errors))

	return result, nil
}

func (o *Orchestrator) analyzeTicker(ctx context.Context, ticker string) error {
	var err error
	if o.metrics != nil {
		timer := o.metrics.AnalysisTimer()
		defer timer.ObserveDuration()
	}
	err = o.runner.AnalyzeTicker(ctx, ticker)
	if o.metrics != nil {
		if err != nil {
			o.metrics.AnalysisErrors.Inc()
		} else {
			o.metrics.TickersAnalyzed.Inc()
		}
	}
	return err
}

func (o *Orchestrator) observeIngested(n int) {
	if o.metrics != nil {
		o.metrics.PaymentsIngested.Add(float64(n))
	}
}

func (o *Orchestrator) log(format string, args ...interface{}) {
	if o.verbose {
		o.logger.Printf(format, args...)
	}
}
