package analysis

import (
	"fmt"
	"time"

	"dividend-lab/internal/domain"
)

// testBase anchors all test schedules; individual dates are day offsets.
var testBase = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// pay builds a raw payment at the given day offset.
func pay(day int, amount float64) *domain.DividendPayment {
	return &domain.DividendPayment{
		ID:        fmt.Sprintf("p-%03d", day),
		Ticker:    "TEST",
		ExDate:    testBase.AddDate(0, 0, day),
		RawAmount: amount,
	}
}

// schedule builds payments of one amount at the given day offsets.
func schedule(amount float64, days ...int) []*domain.DividendPayment {
	payments := make([]*domain.DividendPayment, len(days))
	for i, d := range days {
		payments[i] = pay(d, amount)
	}
	return payments
}
