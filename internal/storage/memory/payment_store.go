package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"dividend-lab/internal/domain"
	"dividend-lab/internal/storage"
)

// PaymentStore is an in-memory implementation of storage.PaymentStore.
type PaymentStore struct {
	mu   sync.RWMutex
	data map[string]*domain.DividendPayment // keyed by payment ID
}

// NewPaymentStore creates a new in-memory payment store.
func NewPaymentStore() *PaymentStore {
	return &PaymentStore{
		data: make(map[string]*domain.DividendPayment),
	}
}

var _ storage.PaymentStore = (*PaymentStore)(nil)

// Insert adds a new payment. Returns ErrDuplicateKey if the ID exists.
func (s *PaymentStore) Insert(_ context.Context, p *domain.DividendPayment) error {
	if p == nil || p.ID == "" || p.Ticker == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[p.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *p
	s.data[p.ID] = &copy
	return nil
}

// InsertBulk adds multiple payments atomically. Fails entire batch on any duplicate.
func (s *PaymentStore) InsertBulk(_ context.Context, payments []*domain.DividendPayment) error {
	if len(payments) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(payments))
	for _, p := range payments {
		if p == nil || p.ID == "" || p.Ticker == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[p.ID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[p.ID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[p.ID] = struct{}{}
	}

	for _, p := range payments {
		copy := *p
		s.data[p.ID] = &copy
	}
	return nil
}

// GetByTicker retrieves all payments for a ticker, ordered by ex-date ASC.
func (s *PaymentStore) GetByTicker(_ context.Context, ticker string) ([]*domain.DividendPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.DividendPayment
	for _, p := range s.data {
		if p.Ticker == ticker {
			copy := *p
			result = append(result, &copy)
		}
	}
	sortPayments(result)
	return result, nil
}

// GetByDateRange retrieves a ticker's payments with ex-date in [start, end] (inclusive).
func (s *PaymentStore) GetByDateRange(_ context.Context, ticker string, start, end time.Time) ([]*domain.DividendPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.DividendPayment
	for _, p := range s.data {
		if p.Ticker == ticker && !p.ExDate.Before(start) && !p.ExDate.After(end) {
			copy := *p
			result = append(result, &copy)
		}
	}
	sortPayments(result)
	return result, nil
}

func sortPayments(payments []*domain.DividendPayment) {
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].ExDate.Equal(payments[j].ExDate) {
			return payments[i].ExDate.Before(payments[j].ExDate)
		}
		return payments[i].ID < payments[j].ID
	})
}
