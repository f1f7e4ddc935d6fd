package memory

import (
	"context"
	"sync"

	"dividend-lab/internal/domain"
	"dividend-lab/internal/storage"
)

// BackfillProgressStore is an in-memory implementation of
// storage.BackfillProgressStore.
type BackfillProgressStore struct {
	mu   sync.RWMutex
	data map[string]*domain.BackfillProgress // keyed by ticker
}

// NewBackfillProgressStore creates a new in-memory progress store.
func NewBackfillProgressStore() *BackfillProgressStore {
	return &BackfillProgressStore{
		data: make(map[string]*domain.BackfillProgress),
	}
}

var _ storage.BackfillProgressStore = (*BackfillProgressStore)(nil)

// Get retrieves progress for a ticker. Returns ErrNotFound if never backfilled.
func (s *BackfillProgressStore) Get(_ context.Context, ticker string) (*domain.BackfillProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[ticker]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

// Upsert creates or updates a ticker's progress.
func (s *BackfillProgressStore) Upsert(_ context.Context, p *domain.BackfillProgress) error {
	if p == nil || p.Ticker == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *p
	s.data[p.Ticker] = &copy
	return nil
}
