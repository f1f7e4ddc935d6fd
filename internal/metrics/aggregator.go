package metrics

import (
	"context"
	"errors"

	"dividend-lab/internal/domain"
	"dividend-lab/internal/storage"
)

// ErrNoAnalysis is returned when a ticker has no analyzed payments yet.
var ErrNoAnalysis = errors.New("no analyzed payments for ticker")

// Aggregator computes ticker statistics from stored analysis results.
type Aggregator struct {
	analysisStore storage.AnalysisStore
}

// NewAggregator creates a new statistics aggregator.
func NewAggregator(analysisStore storage.AnalysisStore) *Aggregator {
	return &Aggregator{analysisStore: analysisStore}
}

// ComputeForTicker loads a ticker's analysis and computes its statistics.
// Returns ErrNoAnalysis if the ticker has not been analyzed.
func (a *Aggregator) ComputeForTicker(ctx context.Context, ticker string) (*domain.TickerStats, error) {
	analyzed, err := a.analysisStore.GetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if len(analyzed) == 0 {
		return nil, ErrNoAnalysis
	}
	return ComputeTickerStats(ticker, analyzed), nil
}

// ComputeForTickers computes statistics for multiple tickers, skipping the
// ones without analysis. Returns stats keyed by ticker.
func (a *Aggregator) ComputeForTickers(ctx context.Context, tickers []string) (map[string]*domain.TickerStats, error) {
	result := make(map[string]*domain.TickerStats, len(tickers))
	for _, ticker := range tickers {
		stats, err := a.ComputeForTicker(ctx, ticker)
		if errors.Is(err, ErrNoAnalysis) {
			continue
		}
		if err != nil {
			return nil, err
		}
		result[ticker] = stats
	}
	return result, nil
}
