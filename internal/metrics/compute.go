// Package metrics computes per-ticker dividend statistics from the engine's
// analyzed payments: payments-per-year and the volatility of the normalized
// (weekly-equivalent) dividend.
package metrics

import (
	"math"

	"dividend-lab/internal/domain"
)

// ComputeTickerStats calculates all statistics for one ticker's analyzed
// payments. Payments must be in ex-date order, as the analysis stores return
// them. An empty input yields zero-valued stats.
func ComputeTickerStats(ticker string, analyzed []*domain.AnalyzedPayment) *domain.TickerStats {
	stats := &domain.TickerStats{
		Ticker:        ticker,
		TotalPayments: len(analyzed),
	}

	var normalized []float64
	for _, ap := range analyzed {
		switch ap.Type {
		case domain.PaymentTypeRegular:
			stats.RegularPayments++
		case domain.PaymentTypeSpecial:
			stats.SpecialPayments++
		}
		if ap.Type == domain.PaymentTypeRegular {
			// Regular payments always carry derived values.
			if ap.NormalizedDiv != nil {
				normalized = append(normalized, *ap.NormalizedDiv)
			}
			stats.PaymentsPerYear = ap.FrequencyNum
			if ap.Annualized != nil {
				annualized := *ap.Annualized
				stats.LatestAnnualized = &annualized
			}
		}
	}

	if len(normalized) == 0 {
		return stats
	}

	mean := computeMean(normalized)
	stats.NormalizedMean = mean
	stats.NormalizedStddev = computeStddev(normalized, mean)
	stats.NormalizedMin = normalized[0]
	stats.NormalizedMax = normalized[0]
	for _, v := range normalized[1:] {
		if v < stats.NormalizedMin {
			stats.NormalizedMin = v
		}
		if v > stats.NormalizedMax {
			stats.NormalizedMax = v
		}
	}

	return stats
}

// computeMean calculates arithmetic mean.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// computeStddev calculates sample standard deviation (n-1 denominator).
func computeStddev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0 // Need at least 2 samples for sample stddev
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}
