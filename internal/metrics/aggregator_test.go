package metrics

import (
	"context"
	"errors"
	"testing"

	"dividend-lab/internal/domain"
	"dividend-lab/internal/storage/memory"
)

func TestAggregator_ComputeForTicker(t *testing.T) {
	ctx := context.Background()
	store := memory.NewAnalysisStore()

	analyzed := []*domain.AnalyzedPayment{
		analyzedRow(0, domain.PaymentTypeInitial, 12, nil, nil),
		analyzedRow(30, domain.PaymentTypeRegular, 12, fp(0.02), fp(1.20)),
	}
	if err := store.ReplaceByTicker(ctx, "TEST", analyzed); err != nil {
		t.Fatalf("ReplaceByTicker failed: %v", err)
	}

	agg := NewAggregator(store)
	stats, err := agg.ComputeForTicker(ctx, "TEST")
	if err != nil {
		t.Fatalf("ComputeForTicker failed: %v", err)
	}

	if stats.TotalPayments != 2 || stats.RegularPayments != 1 {
		t.Errorf("Expected 2 total / 1 regular, got %d / %d", stats.TotalPayments, stats.RegularPayments)
	}
}

func TestAggregator_NoAnalysis(t *testing.T) {
	agg := NewAggregator(memory.NewAnalysisStore())

	_, err := agg.ComputeForTicker(context.Background(), "MISSING")
	if !errors.Is(err, ErrNoAnalysis) {
		t.Errorf("Expected ErrNoAnalysis, got %v", err)
	}
}

func TestAggregator_ComputeForTickersSkipsMissing(t *testing.T) {
	ctx := context.Background()
	store := memory.NewAnalysisStore()

	analyzed := []*domain.AnalyzedPayment{
		analyzedRow(0, domain.PaymentTypeInitial, 12, nil, nil),
	}
	if err := store.ReplaceByTicker(ctx, "AAA", analyzed); err != nil {
		t.Fatalf("ReplaceByTicker failed: %v", err)
	}

	agg := NewAggregator(store)
	stats, err := agg.ComputeForTickers(ctx, []string{"AAA", "MISSING"})
	if err != nil {
		t.Fatalf("ComputeForTickers failed: %v", err)
	}

	if len(stats) != 1 {
		t.Fatalf("Expected 1 ticker with stats, got %d", len(stats))
	}
	if _, ok := stats["AAA"]; !ok {
		t.Error("Expected stats for AAA")
	}
}
