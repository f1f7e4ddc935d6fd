package analysis

import (
	"testing"

	"dividend-lab/internal/domain"
)

func resolve(payments []*domain.DividendPayment) []int {
	sequenced, _ := Sequence(payments)
	types := ClassifyTypes(sequenced, DayGaps(sequenced), DefaultConfig())
	return ResolveCadence(sequenced, types, DefaultConfig())
}

func assertFreqs(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d frequencies, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Payment %d: expected frequency %d, got %d", i, want[i], got[i])
		}
	}
}

func TestResolveCadence_Monthly(t *testing.T) {
	freqs := resolve(schedule(0.10, 0, 30, 60, 90, 120))

	assertFreqs(t, freqs, []int{12, 12, 12, 12, 12})
}

func TestResolveCadence_Weekly(t *testing.T) {
	freqs := resolve(schedule(0.05, 0, 7, 14, 21, 28))

	assertFreqs(t, freqs, []int{52, 52, 52, 52, 52})
}

func TestResolveCadence_Quarterly(t *testing.T) {
	freqs := resolve(schedule(0.25, 0, 91, 182, 273))

	assertFreqs(t, freqs, []int{4, 4, 4, 4})
}

func TestResolveCadence_SemiAnnualAndAnnual(t *testing.T) {
	semi := resolve(schedule(1.00, 0, 182, 364))
	assertFreqs(t, semi, []int{2, 2, 2})

	annual := resolve(schedule(2.00, 0, 365, 730))
	assertFreqs(t, annual, []int{1, 1, 1})
}

func TestResolveCadence_MonthlyDriftStaysMonthly(t *testing.T) {
	// One 38-day gap in a monthly series is calendar drift, not a change.
	freqs := resolve(schedule(0.10, 0, 30, 60, 98, 128))

	assertFreqs(t, freqs, []int{12, 12, 12, 12, 12})
}

func TestResolveCadence_ShortMonthGapStaysMonthly(t *testing.T) {
	// An 18-day gap lands in the monthly drift band even though it is close
	// to a doubled weekly gap.
	freqs := resolve(schedule(0.10, 0, 30, 48, 78))

	assertFreqs(t, freqs, []int{12, 12, 12, 12})
}

func TestResolveCadence_MonthlyToWeeklyTransition(t *testing.T) {
	payments := schedule(0.4653, 0, 30, 60, 90)
	payments = append(payments, schedule(0.1025, 97, 104, 111, 118)...)

	freqs := resolve(payments)

	// The transition is pinned to the first weekly payment; the last monthly
	// payment keeps the cadence its own backward gap confirmed.
	assertFreqs(t, freqs, []int{12, 12, 12, 12, 52, 52, 52, 52})
}

func TestResolveCadence_AmbiguousGapResolvedByVote(t *testing.T) {
	// A 13-day gap sits on the weekly/monthly boundary. Four confirmed weekly
	// payments with an unchanged amount vote it weekly.
	freqs := resolve(schedule(0.05, 0, 7, 14, 21, 34))

	assertFreqs(t, freqs, []int{52, 52, 52, 52, 52})
}

func TestResolveCadence_AmbiguousGapAmountChangeFallsToNearestBand(t *testing.T) {
	// Same 60-day boundary gap: with the amount carried over it stays
	// quarterly by vote, with a changed amount it falls to the nearest
	// canonical gap instead.
	unchanged := resolve(schedule(0.25, 0, 91, 182, 273, 333))
	assertFreqs(t, unchanged, []int{4, 4, 4, 4, 4})

	payments := schedule(0.25, 0, 91, 182, 273)
	payments = append(payments, pay(333, 0.10))
	changed := resolve(payments)
	if changed[4] != domain.FrequencyMonthly {
		t.Errorf("Expected nearest-band monthly for changed amount, got %d", changed[4])
	}
}

func TestResolveCadence_SpecialsInheritPrevailing(t *testing.T) {
	payments := schedule(0.50, 0, 30, 60)
	payments = append(payments, pay(63, 0.05)) // special by hard gap rule
	payments = append(payments, pay(90, 0.50))

	sequenced, _ := Sequence(payments)
	types := ClassifyTypes(sequenced, DayGaps(sequenced), DefaultConfig())
	freqs := ResolveCadence(sequenced, types, DefaultConfig())

	if types[3] != domain.PaymentTypeSpecial {
		t.Fatalf("Expected special, got %s", types[3])
	}
	if freqs[3] != domain.FrequencyMonthly {
		t.Errorf("Expected special to inherit monthly, got %d", freqs[3])
	}
}

func TestResolveCadence_TooFewUsableFallsBack(t *testing.T) {
	freqs := resolve(schedule(0.10, 0))

	assertFreqs(t, freqs, []int{domain.FrequencyMonthly})
}
