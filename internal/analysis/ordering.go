package analysis

import (
	"sort"

	"dividend-lab/internal/domain"
)

// Sequence orders a ticker's raw payments ascending by ex-date and resolves
// duplicate dates. When two records share an ex-date the manually-entered one
// wins; two non-manual records on one date cannot be resolved, so all but the
// first are dropped and counted.
//
// The input slice is not modified. Returns the ordered, deduplicated payments
// and the number of dropped duplicates.
func Sequence(payments []*domain.DividendPayment) ([]*domain.DividendPayment, int) {
	if len(payments) == 0 {
		return nil, 0
	}

	sorted := make([]*domain.DividendPayment, len(payments))
	copy(sorted, payments)
	sort.Slice(sorted, func(i, j int) bool {
		return comparePayments(sorted[i], sorted[j]) < 0
	})

	result := make([]*domain.DividendPayment, 0, len(sorted))
	dropped := 0
	for _, p := range sorted {
		if len(result) > 0 {
			prev := result[len(result)-1]
			if prev.ExDate.Equal(p.ExDate) {
				// Manual record wins the date; sort order guarantees it comes
				// first when present, so any later record on the date is dropped.
				dropped++
				continue
			}
		}
		result = append(result, p)
	}
	return result, dropped
}

// DayGaps computes the whole-day difference of each payment to its immediate
// predecessor. The first entry is nil. Payments must be pre-sequenced.
func DayGaps(payments []*domain.DividendPayment) []*int {
	gaps := make([]*int, len(payments))
	for i := 1; i < len(payments); i++ {
		gap := domain.DaysBetween(payments[i-1].ExDate, payments[i].ExDate)
		gaps[i] = &gap
	}
	return gaps
}

// comparePayments returns:
//   - negative if a < b
//   - zero if a == b
//   - positive if a > b
//
// Order: (ex_date ASC, manual first, id ASC)
func comparePayments(a, b *domain.DividendPayment) int {
	if !a.ExDate.Equal(b.ExDate) {
		if a.ExDate.Before(b.ExDate) {
			return -1
		}
		return 1
	}
	if a.IsManual != b.IsManual {
		if a.IsManual {
			return -1
		}
		return 1
	}
	if a.ID != b.ID {
		if a.ID < b.ID {
			return -1
		}
		return 1
	}
	return 0
}
