package domain

import "time"

// AnalyzedPayment is the engine's verdict for one raw payment.
// Corresponds to analyzed_payments table in PostgreSQL. The full set for a
// ticker is replaced on every analysis run.
type AnalyzedPayment struct {
	PaymentID      string      // matches DividendPayment.ID
	Ticker         string      // security symbol
	ExDate         time.Time   // ex-dividend date, midnight UTC
	Amount         float64     // effective amount used (adjusted when available)
	DaysSincePrev  *int        // day gap to previous record, nil for first
	Type           PaymentType // initial | regular | special
	FrequencyNum   int         // one of 52, 12, 4, 2, 1; never zero
	FrequencyLabel string      // display label for FrequencyNum
	Annualized     *float64    // round(amount * frequency, 2); regular only
	NormalizedDiv  *float64    // round(amount * frequency / 52, 6); regular only
	ComputedAt     int64       // analysis timestamp (ms)
}

// NormalizedSeriesPoint is one point of the weekly-equivalent dividend line.
// Corresponds to normalized_series table in ClickHouse. Only regular payments
// contribute points; initial and special payments are excluded from the chart
// while remaining in the raw schedule.
type NormalizedSeriesPoint struct {
	Ticker        string    // security symbol
	ExDate        time.Time // ex-dividend date, midnight UTC
	NormalizedDiv float64   // weekly-equivalent dividend rate
	Annualized    float64   // annualized dividend rate
	FrequencyNum  int       // cadence the point was derived from
}
