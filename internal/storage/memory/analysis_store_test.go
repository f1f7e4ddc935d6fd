package memory

import (
	"context"
	"testing"
	"time"

	"dividend-lab/internal/domain"
)

func testAnalyzed(id string, day int) *domain.AnalyzedPayment {
	return &domain.AnalyzedPayment{
		PaymentID:      id,
		Ticker:         "AAA",
		ExDate:         time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Type:           domain.PaymentTypeRegular,
		FrequencyNum:   domain.FrequencyMonthly,
		FrequencyLabel: "monthly",
	}
}

func TestAnalysisStore_ReplaceByTicker(t *testing.T) {
	ctx := context.Background()
	store := NewAnalysisStore()

	first := []*domain.AnalyzedPayment{testAnalyzed("p1", 0), testAnalyzed("p2", 30)}
	if err := store.ReplaceByTicker(ctx, "AAA", first); err != nil {
		t.Fatalf("ReplaceByTicker failed: %v", err)
	}

	// Second run fully replaces the first set.
	second := []*domain.AnalyzedPayment{testAnalyzed("p1", 0), testAnalyzed("p2", 30), testAnalyzed("p3", 60)}
	if err := store.ReplaceByTicker(ctx, "AAA", second); err != nil {
		t.Fatalf("ReplaceByTicker failed: %v", err)
	}

	got, err := store.GetByTicker(ctx, "AAA")
	if err != nil {
		t.Fatalf("GetByTicker failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 rows after replacement, got %d", len(got))
	}
}

func TestAnalysisStore_ReplaceWithEmptyClears(t *testing.T) {
	ctx := context.Background()
	store := NewAnalysisStore()

	if err := store.ReplaceByTicker(ctx, "AAA", []*domain.AnalyzedPayment{testAnalyzed("p1", 0)}); err != nil {
		t.Fatalf("ReplaceByTicker failed: %v", err)
	}
	if err := store.ReplaceByTicker(ctx, "AAA", nil); err != nil {
		t.Fatalf("ReplaceByTicker with empty set failed: %v", err)
	}

	got, _ := store.GetByTicker(ctx, "AAA")
	if len(got) != 0 {
		t.Errorf("Expected empty set, got %d rows", len(got))
	}
}

func TestAnalysisStore_GetByDateRange(t *testing.T) {
	ctx := context.Background()
	store := NewAnalysisStore()

	rows := []*domain.AnalyzedPayment{
		testAnalyzed("p1", 0),
		testAnalyzed("p2", 30),
		testAnalyzed("p3", 60),
	}
	if err := store.ReplaceByTicker(ctx, "AAA", rows); err != nil {
		t.Fatalf("ReplaceByTicker failed: %v", err)
	}

	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	got, err := store.GetByDateRange(ctx, "AAA", base.AddDate(0, 0, 30), base.AddDate(0, 0, 60))
	if err != nil {
		t.Fatalf("GetByDateRange failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 rows in range, got %d", len(got))
	}
}

func TestAnalysisStore_SortsByExDate(t *testing.T) {
	ctx := context.Background()
	store := NewAnalysisStore()

	rows := []*domain.AnalyzedPayment{testAnalyzed("p2", 30), testAnalyzed("p1", 0)}
	if err := store.ReplaceByTicker(ctx, "AAA", rows); err != nil {
		t.Fatalf("ReplaceByTicker failed: %v", err)
	}

	got, _ := store.GetByTicker(ctx, "AAA")
	if got[0].PaymentID != "p1" || got[1].PaymentID != "p2" {
		t.Errorf("Expected order [p1 p2], got [%s %s]", got[0].PaymentID, got[1].PaymentID)
	}
}
