package analysis

import "dividend-lab/internal/domain"

// Config holds the engine's tunable thresholds. The anomaly and voting
// parameters are calibrated against historical fund series rather than fixed
// by contract, so callers may override them per run.
type Config struct {
	// SpecialMaxGapDays is the hard gap threshold: a payment this close to the
	// previous one can never start a new regular cycle.
	SpecialMaxGapDays int

	// AnomalyRatio flags a payment as special when its amount is at most this
	// fraction of the trailing baseline amount.
	AnomalyRatio float64

	// BaselineWindow is how many trailing regular amounts feed the baseline
	// moving average for the anomaly check.
	BaselineWindow int

	// VoteWindow is how many trailing confirmed frequencies participate in the
	// dominant-frequency vote for ambiguous gaps.
	VoteWindow int

	// VoteMajority is the minimum count a frequency needs inside VoteWindow to
	// count as a clear majority.
	VoteMajority int

	// AmountTolerance is the relative amount change below which two payments
	// are considered materially unchanged.
	AmountTolerance float64

	// FallbackFrequency is assigned when fewer than two usable payments exist
	// and the cadence cannot be determined.
	FallbackFrequency int
}

// DefaultConfig returns the thresholds validated against real fund histories.
func DefaultConfig() Config {
	return Config{
		SpecialMaxGapDays: 5,
		AnomalyRatio:      0.5,
		BaselineWindow:    3,
		VoteWindow:        4,
		VoteMajority:      3,
		AmountTolerance:   0.2,
		FallbackFrequency: domain.FrequencyMonthly,
	}
}
