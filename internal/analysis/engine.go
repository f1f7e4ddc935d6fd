// Package analysis implements the dividend cadence classification and
// normalization engine. Given one ticker's full distribution history it
// determines each payment's type (initial, regular, special), its cadence,
// and the annualized and weekly-equivalent rates used for charting and yield
// math.
//
// The engine is a pure function over a flat ordered slice: no state survives
// between invocations, identical input produces identical classification, and
// every run yields a complete replacement set for the ticker.
package analysis

import (
	"time"

	"dividend-lab/internal/domain"
)

// Report carries non-fatal input quality counts from a run.
type Report struct {
	// DuplicatesDropped counts records skipped because their ex-date collided
	// with another record and the tie could not be resolved in their favor.
	DuplicatesDropped int
}

// Analyze runs the full engine over one ticker's raw payments.
// Stages: sequence -> classify types -> resolve cadence -> annualize.
// Zero usable records yield an empty result, never an error.
func Analyze(payments []*domain.DividendPayment, cfg Config) ([]*domain.AnalyzedPayment, *Report) {
	report := &Report{}

	sequenced, dropped := Sequence(payments)
	report.DuplicatesDropped = dropped
	if len(sequenced) == 0 {
		return nil, report
	}

	gaps := DayGaps(sequenced)
	types := ClassifyTypes(sequenced, gaps, cfg)
	freqs := ResolveCadence(sequenced, types, cfg)

	now := time.Now().UnixMilli()
	result := make([]*domain.AnalyzedPayment, len(sequenced))
	for i, p := range sequenced {
		ap := &domain.AnalyzedPayment{
			PaymentID:      p.ID,
			Ticker:         p.Ticker,
			ExDate:         p.ExDate,
			Amount:         p.Amount(),
			DaysSincePrev:  gaps[i],
			Type:           types[i],
			FrequencyNum:   freqs[i],
			FrequencyLabel: domain.FrequencyLabel(freqs[i]),
			ComputedAt:     now,
		}
		if types[i] == domain.PaymentTypeRegular {
			annualized, normalized := annualize(ap.Amount, ap.FrequencyNum)
			ap.Annualized = &annualized
			ap.NormalizedDiv = &normalized
		}
		result[i] = ap
	}

	return result, report
}

// NormalizedSeries extracts the chart feed from analyzed payments: one point
// per regular payment, in ex-date order. Initial and special payments stay in
// the raw schedule but never appear on the normalized line.
func NormalizedSeries(analyzed []*domain.AnalyzedPayment) []*domain.NormalizedSeriesPoint {
	var series []*domain.NormalizedSeriesPoint
	for _, ap := range analyzed {
		if ap.Type != domain.PaymentTypeRegular || ap.NormalizedDiv == nil || ap.Annualized == nil {
			continue
		}
		series = append(series, &domain.NormalizedSeriesPoint{
			Ticker:        ap.Ticker,
			ExDate:        ap.ExDate,
			NormalizedDiv: *ap.NormalizedDiv,
			Annualized:    *ap.Annualized,
			FrequencyNum:  ap.FrequencyNum,
		})
	}
	return series
}
