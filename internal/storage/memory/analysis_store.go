package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"dividend-lab/internal/domain"
	"dividend-lab/internal/storage"
)

// AnalysisStore is an in-memory implementation of storage.AnalysisStore.
type AnalysisStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.AnalyzedPayment // keyed by ticker
}

// NewAnalysisStore creates a new in-memory analysis store.
func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{
		data: make(map[string][]*domain.AnalyzedPayment),
	}
}

var _ storage.AnalysisStore = (*AnalysisStore)(nil)

// ReplaceByTicker atomically replaces the ticker's full analysis set.
func (s *AnalysisStore) ReplaceByTicker(_ context.Context, ticker string, analyzed []*domain.AnalyzedPayment) error {
	if ticker == "" {
		return storage.ErrInvalidInput
	}

	rows := make([]*domain.AnalyzedPayment, 0, len(analyzed))
	for _, ap := range analyzed {
		if ap == nil || ap.PaymentID == "" {
			return storage.ErrInvalidInput
		}
		copy := *ap
		rows = append(rows, &copy)
	}
	sortAnalyzed(rows)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[ticker] = rows
	return nil
}

// GetByTicker retrieves the ticker's analysis, ordered by ex-date ASC.
func (s *AnalysisStore) GetByTicker(_ context.Context, ticker string) ([]*domain.AnalyzedPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.data[ticker]
	result := make([]*domain.AnalyzedPayment, 0, len(rows))
	for _, ap := range rows {
		copy := *ap
		result = append(result, &copy)
	}
	return result, nil
}

// GetByDateRange retrieves analysis rows with ex-date in [start, end] (inclusive).
func (s *AnalysisStore) GetByDateRange(_ context.Context, ticker string, start, end time.Time) ([]*domain.AnalyzedPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.AnalyzedPayment
	for _, ap := range s.data[ticker] {
		if !ap.ExDate.Before(start) && !ap.ExDate.After(end) {
			copy := *ap
			result = append(result, &copy)
		}
	}
	return result, nil
}

func sortAnalyzed(rows []*domain.AnalyzedPayment) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].ExDate.Equal(rows[j].ExDate) {
			return rows[i].ExDate.Before(rows[j].ExDate)
		}
		return rows[i].PaymentID < rows[j].PaymentID
	})
}
