package analysis

import "dividend-lab/internal/domain"

// Canonical day counts per frequency, used for nearest-band fallback.
var canonicalGapDays = []struct {
	freq int
	days int
}{
	{domain.FrequencyWeekly, 7},
	{domain.FrequencyMonthly, 30},
	{domain.FrequencyQuarterly, 91},
	{domain.FrequencySemiAnnual, 182},
	{domain.FrequencyAnnual, 365},
}

// band is the result of mapping a day gap onto the cadence bands.
type band struct {
	freq      int
	ambiguous bool // gap sits exactly on a boundary between two frequencies
}

// bandForGap maps a day gap to a frequency band.
//
// Bands (inclusive): <=9 weekly strict; 10-13 weekly drift; 14-25 monthly
// drift (short-month drift is not a cadence change, even though the gap is
// close to double a weekly one); 26-34 monthly strict; 35-59 monthly drift;
// 60-110 quarterly; 111-200 semi-annual; >200 annual. Gaps landing exactly on
// a boundary between two different frequencies are ambiguous and need the
// surrounding history to resolve.
func bandForGap(gap int) band {
	switch {
	case gap <= 9:
		return band{freq: domain.FrequencyWeekly}
	case gap <= 13:
		return band{freq: domain.FrequencyWeekly, ambiguous: gap == 13}
	case gap <= 25:
		return band{freq: domain.FrequencyMonthly, ambiguous: gap == 14}
	case gap <= 34:
		return band{freq: domain.FrequencyMonthly}
	case gap <= 59:
		return band{freq: domain.FrequencyMonthly, ambiguous: gap == 59}
	case gap <= 110:
		return band{freq: domain.FrequencyQuarterly, ambiguous: gap == 60 || gap == 110}
	case gap <= 200:
		return band{freq: domain.FrequencySemiAnnual, ambiguous: gap == 111 || gap == 200}
	default:
		return band{freq: domain.FrequencyAnnual, ambiguous: gap == 201}
	}
}

// nearestStrictFrequency picks the frequency whose canonical gap is closest
// to the raw day count.
func nearestStrictFrequency(gap int) int {
	best := canonicalGapDays[0].freq
	bestDist := abs(gap - canonicalGapDays[0].days)
	for _, c := range canonicalGapDays[1:] {
		if d := abs(gap - c.days); d < bestDist {
			best = c.freq
			bestDist = d
		}
	}
	return best
}

// ResolveCadence assigns a frequency to every payment.
//
// Pass one walks the non-special payments forward, resolving each from its
// backward gap: squarely in-band gaps resolve directly; ambiguous gaps fall
// to a dominant-frequency vote over the trailing confirmed window when the
// amount is materially unchanged, and to the nearest strict band otherwise.
//
// Pass two walks backward and revises a payment whose forward gap squarely
// matches the next payment's frequency while its own differs, provided the
// amount carried over unchanged. This pins a cadence transition to the first
// payment of the new cadence: the last payment of the old cadence keeps the
// frequency its own backward gap confirmed, while the boundary payment is
// re-attributed once its successor confirms the new cadence.
//
// Special payments carry the prevailing frequency so that every output has a
// canonical value. With fewer than two usable payments the cadence cannot be
// determined and every payment gets the configured fallback.
func ResolveCadence(payments []*domain.DividendPayment, types []domain.PaymentType, cfg Config) []int {
	n := len(payments)
	freqs := make([]int, n)

	var usable []int
	for i, t := range types {
		if t != domain.PaymentTypeSpecial {
			usable = append(usable, i)
		}
	}

	if len(usable) < 2 {
		for i := range freqs {
			freqs[i] = cfg.FallbackFrequency
		}
		return freqs
	}

	// Pass one: forward resolution from backward gaps. The first usable
	// payment has no backward gap and takes its forward one.
	firstGap := usableGapDays(payments, usable[0], usable[1])
	if b := bandForGap(firstGap); !b.ambiguous {
		freqs[usable[0]] = b.freq
	} else {
		freqs[usable[0]] = nearestStrictFrequency(firstGap)
	}

	history := []int{freqs[usable[0]]}
	for k := 1; k < len(usable); k++ {
		cur, prev := usable[k], usable[k-1]
		gap := usableGapDays(payments, prev, cur)
		b := bandForGap(gap)

		var f int
		switch {
		case !b.ambiguous:
			f = b.freq
		default:
			dom, ok := dominantFrequency(history, cfg)
			if ok && !materiallyChanged(payments[cur].Amount(), payments[prev].Amount(), cfg.AmountTolerance) {
				// Calendar drift, not a cadence change.
				f = dom
			} else {
				f = nearestStrictFrequency(gap)
			}
		}

		freqs[cur] = f
		history = append(history, f)
		if len(history) > cfg.VoteWindow {
			history = history[1:]
		}
	}

	// Pass two: backward confirmation of cadence transitions.
	for k := len(usable) - 2; k >= 0; k-- {
		cur, nxt := usable[k], usable[k+1]
		fwd := bandForGap(usableGapDays(payments, cur, nxt))
		if fwd.ambiguous || fwd.freq != freqs[nxt] || fwd.freq == freqs[cur] {
			continue
		}
		if materiallyChanged(payments[cur].Amount(), payments[nxt].Amount(), cfg.AmountTolerance) {
			// Amount ties this payment to the old regime.
			continue
		}
		freqs[cur] = fwd.freq
	}

	// Specials inherit the prevailing frequency. The first payment is always
	// Initial, so a prevailing value exists for every special.
	last := freqs[usable[0]]
	for i := 0; i < n; i++ {
		if types[i] != domain.PaymentTypeSpecial {
			last = freqs[i]
			continue
		}
		freqs[i] = last
	}

	return freqs
}

// usableGapDays is the day gap between two payments, skipping any special
// payments recorded between them.
func usableGapDays(payments []*domain.DividendPayment, from, to int) int {
	return domain.DaysBetween(payments[from].ExDate, payments[to].ExDate)
}

// dominantFrequency returns the majority frequency over the trailing window,
// and whether a clear majority exists.
func dominantFrequency(history []int, cfg Config) (int, bool) {
	start := len(history) - cfg.VoteWindow
	if start < 0 {
		start = 0
	}
	counts := make(map[int]int)
	for _, f := range history[start:] {
		counts[f]++
	}
	best, bestCount := 0, 0
	for f, c := range counts {
		if c > bestCount {
			best, bestCount = f, c
		}
	}
	if bestCount >= cfg.VoteMajority {
		return best, true
	}
	return 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
