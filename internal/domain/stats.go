package domain

// TickerStats summarizes a ticker's analyzed dividend history for the
// statistics service. Computed from analyzed payments, never stored raw.
type TickerStats struct {
	Ticker          string // security symbol
	TotalPayments   int    // all payments, any type
	RegularPayments int    // payments classified regular
	SpecialPayments int    // payments classified special

	PaymentsPerYear int // frequency of the most recent regular payment

	// Normalized (weekly-equivalent) dividend distribution over regular payments.
	NormalizedMean   float64
	NormalizedStddev float64 // dividend volatility, sample stddev
	NormalizedMin    float64
	NormalizedMax    float64

	LatestAnnualized *float64 // most recent regular annualized rate, nil if none
}

// BackfillProgress tracks the resume point for a ticker's ingestion.
// Corresponds to backfill_progress table in PostgreSQL.
type BackfillProgress struct {
	Ticker      string // security symbol, primary key
	LastExDate  int64  // ex-date of the newest ingested payment (ms), 0 if none
	LastRunAt   int64  // completion time of the last backfill (ms)
	PaymentsSum int64  // total payments ingested across runs
}
