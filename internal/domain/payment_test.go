package domain

import (
	"testing"
	"time"
)

func TestAmount_PrefersAdjusted(t *testing.T) {
	adj := 0.25
	p := &DividendPayment{RawAmount: 0.5, AdjAmount: &adj}
	if p.Amount() != 0.25 {
		t.Errorf("Expected adjusted amount 0.25, got %v", p.Amount())
	}

	zero := 0.0
	p = &DividendPayment{RawAmount: 0.5, AdjAmount: &zero}
	if p.Amount() != 0.5 {
		t.Errorf("Expected raw fallback for zero adjusted, got %v", p.Amount())
	}

	p = &DividendPayment{RawAmount: 0.5}
	if p.Amount() != 0.5 {
		t.Errorf("Expected raw amount 0.5, got %v", p.Amount())
	}
}

func TestDay_NormalizesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2024, 1, 16, 3, 30, 0, 0, loc) // 2024-01-15T22:30Z

	got := Day(in)
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	if got := DaysBetween(from, from.AddDate(0, 0, 30)); got != 30 {
		t.Errorf("Expected 30, got %d", got)
	}
	if got := DaysBetween(from, from); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
	// Crosses the 2024 leap day.
	if got := DaysBetween(from, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)); got != 60 {
		t.Errorf("Expected 60 across leap day, got %d", got)
	}
}

func TestFrequencyLabel(t *testing.T) {
	cases := map[int]string{
		FrequencyWeekly:     "weekly",
		FrequencyMonthly:    "monthly",
		FrequencyQuarterly:  "quarterly",
		FrequencySemiAnnual: "semi-annual",
		FrequencyAnnual:     "annual",
		0:                   "unknown",
	}
	for freq, want := range cases {
		if got := FrequencyLabel(freq); got != want {
			t.Errorf("FrequencyLabel(%d): expected %q, got %q", freq, want, got)
		}
	}
}
