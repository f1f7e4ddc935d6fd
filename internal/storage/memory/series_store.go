package memory

import (
	"context"
	"sort"
	"sync"

	"dividend-lab/internal/domain"
	"dividend-lab/internal/storage"
)

// NormalizedSeriesStore is an in-memory implementation of
// storage.NormalizedSeriesStore.
type NormalizedSeriesStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.NormalizedSeriesPoint // keyed by ticker
}

// NewNormalizedSeriesStore creates a new in-memory series store.
func NewNormalizedSeriesStore() *NormalizedSeriesStore {
	return &NormalizedSeriesStore{
		data: make(map[string][]*domain.NormalizedSeriesPoint),
	}
}

var _ storage.NormalizedSeriesStore = (*NormalizedSeriesStore)(nil)

// ReplaceByTicker atomically replaces the ticker's normalized series.
func (s *NormalizedSeriesStore) ReplaceByTicker(_ context.Context, ticker string, points []*domain.NormalizedSeriesPoint) error {
	if ticker == "" {
		return storage.ErrInvalidInput
	}

	rows := make([]*domain.NormalizedSeriesPoint, 0, len(points))
	for _, pt := range points {
		if pt == nil {
			return storage.ErrInvalidInput
		}
		copy := *pt
		rows = append(rows, &copy)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ExDate.Before(rows[j].ExDate)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[ticker] = rows
	return nil
}

// GetByTicker retrieves the ticker's series, ordered by ex-date ASC.
func (s *NormalizedSeriesStore) GetByTicker(_ context.Context, ticker string) ([]*domain.NormalizedSeriesPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.data[ticker]
	result := make([]*domain.NormalizedSeriesPoint, 0, len(rows))
	for _, pt := range rows {
		copy := *pt
		result = append(result, &copy)
	}
	return result, nil
}
