package analysis

import "dividend-lab/internal/domain"

// ClassifyTypes labels each sequenced payment Initial, Regular, or Special.
//
// Rules, in order:
//   - first payment is always Initial
//   - a raw gap of SpecialMaxGapDays or less is always Special
//   - an off-schedule payment whose amount is a small fraction of the trailing
//     baseline is Special, unless the reduced amount persists into the next
//     payment (then it is the start of a new regime, not a one-off)
//   - everything else is Regular
//
// Special payments are excluded from the baseline and gap history used by the
// anomaly check, matching their exclusion from cadence history.
func ClassifyTypes(payments []*domain.DividendPayment, gaps []*int, cfg Config) []domain.PaymentType {
	types := make([]domain.PaymentType, len(payments))
	if len(payments) == 0 {
		return types
	}

	types[0] = domain.PaymentTypeInitial

	// Trailing history over non-special payments only.
	amounts := []float64{payments[0].Amount()}
	var usableGaps []int
	prevUsable := 0

	for i := 1; i < len(payments); i++ {
		p := payments[i]
		rawGap := *gaps[i]
		usableGap := domain.DaysBetween(payments[prevUsable].ExDate, p.ExDate)

		switch {
		case rawGap <= cfg.SpecialMaxGapDays:
			types[i] = domain.PaymentTypeSpecial
		case isAnomalous(p, next(payments, i), payments[prevUsable], usableGap, amounts, usableGaps, cfg):
			types[i] = domain.PaymentTypeSpecial
		default:
			types[i] = domain.PaymentTypeRegular
		}

		if types[i] != domain.PaymentTypeSpecial {
			amounts = append(amounts, p.Amount())
			usableGaps = append(usableGaps, usableGap)
			prevUsable = i
		}
	}

	return types
}

// isAnomalous reports whether a payment looks like a one-off extra
// distribution: tiny relative to the trailing baseline, materially different
// from the previous in-series amount, arriving well ahead of schedule, and
// followed by a return to baseline (or by nothing yet).
func isAnomalous(p, nextPayment, prevUsable *domain.DividendPayment, usableGap int, amounts []float64, usableGaps []int, cfg Config) bool {
	if len(usableGaps) == 0 {
		// No established cadence to be off-schedule from.
		return false
	}

	baseline := tailMean(amounts, cfg.BaselineWindow)
	if baseline <= 0 {
		return false
	}

	amount := p.Amount()
	if amount > cfg.AnomalyRatio*baseline {
		return false
	}

	// A reduced amount repeating the previous payment's amount is a regime
	// change in progress, not an extra distribution.
	prevAmount := prevUsable.Amount()
	if prevAmount > 0 && !materiallyChanged(amount, prevAmount, cfg.AmountTolerance) {
		return false
	}

	// Must arrive well ahead of the established schedule.
	expectedGap := tailMeanInt(usableGaps, cfg.BaselineWindow)
	if float64(usableGap) >= expectedGap/2 {
		return false
	}

	// If the series continues at the reduced amount, this payment starts the
	// new regime. With no successor yet, treat as a one-off; a later re-run
	// revises it once more data arrives.
	if nextPayment != nil && nextPayment.Amount() <= cfg.AnomalyRatio*baseline {
		return false
	}

	return true
}

func next(payments []*domain.DividendPayment, i int) *domain.DividendPayment {
	if i+1 < len(payments) {
		return payments[i+1]
	}
	return nil
}

// materiallyChanged reports whether b differs from a by more than the
// relative tolerance.
func materiallyChanged(a, b, tolerance float64) bool {
	if b == 0 {
		return a != 0
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff > tolerance*b
}

// tailMean averages the last window entries.
func tailMean(values []float64, window int) float64 {
	if len(values) == 0 {
		return 0
	}
	start := len(values) - window
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for _, v := range values[start:] {
		sum += v
	}
	return sum / float64(len(values)-start)
}

func tailMeanInt(values []int, window int) float64 {
	if len(values) == 0 {
		return 0
	}
	start := len(values) - window
	if start < 0 {
		start = 0
	}
	sum := 0
	for _, v := range values[start:] {
		sum += v
	}
	return float64(sum) / float64(len(values)-start)
}
