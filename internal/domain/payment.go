package domain

import "time"

// DividendPayment represents a single raw cash distribution for a ticker.
// Corresponds to dividend_payments table in PostgreSQL.
type DividendPayment struct {
	ID        string    // opaque correlation handle, stable across re-runs
	Ticker    string    // security symbol, uppercase
	ExDate    time.Time // ex-dividend date, normalized to midnight UTC
	RawAmount float64   // declared amount per share, >= 0
	AdjAmount *float64  // split-adjusted amount, preferred over raw when > 0
	IsManual  bool      // manually entered record, wins duplicate-date ties
	CreatedAt int64     // record creation timestamp (ms)
}

// Amount returns the split-adjusted amount when present and positive,
// falling back to the raw declared amount.
func (p *DividendPayment) Amount() float64 {
	if p.AdjAmount != nil && *p.AdjAmount > 0 {
		return *p.AdjAmount
	}
	return p.RawAmount
}

// PaymentType classifies a payment's role in the distribution series.
type PaymentType string

// Payment type constants
const (
	PaymentTypeInitial PaymentType = "initial" // first-ever payment in the series
	PaymentTypeRegular PaymentType = "regular" // part of the recurring cadence
	PaymentTypeSpecial PaymentType = "special" // one-off or extra distribution
)

// Canonical payment frequencies (payments per year).
const (
	FrequencyWeekly     = 52
	FrequencyMonthly    = 12
	FrequencyQuarterly  = 4
	FrequencySemiAnnual = 2
	FrequencyAnnual     = 1
)

// FrequencyLabel returns the display label for a canonical frequency.
func FrequencyLabel(freq int) string {
	switch freq {
	case FrequencyWeekly:
		return "weekly"
	case FrequencyMonthly:
		return "monthly"
	case FrequencyQuarterly:
		return "quarterly"
	case FrequencySemiAnnual:
		return "semi-annual"
	case FrequencyAnnual:
		return "annual"
	default:
		return "unknown"
	}
}

// Day normalizes a timestamp to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day difference between two ex-dates.
// Both arguments are expected to be midnight-UTC dates.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}
