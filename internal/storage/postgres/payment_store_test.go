package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dividend-lab/internal/domain"
	"dividend-lab/internal/storage"
)

func testPayment(id, ticker string, day int, amount float64) *domain.DividendPayment {
	return &domain.DividendPayment{
		ID:        id,
		Ticker:    ticker,
		ExDate:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		RawAmount: amount,
		CreatedAt: 1700000000000,
	}
}

func TestPaymentStore_InsertAndGetByTicker(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPaymentStore(pool)

	p := testPayment("pg-p1", "SPY", 0, 0.5)
	p.AdjAmount = ptr(0.25)
	p.IsManual = true
	require.NoError(t, store.Insert(ctx, p))
	require.NoError(t, store.Insert(ctx, testPayment("pg-p2", "SPY", 30, 0.5)))
	require.NoError(t, store.Insert(ctx, testPayment("pg-p3", "QQQ", 0, 0.4)))

	got, err := store.GetByTicker(ctx, "SPY")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "pg-p1", got[0].ID)
	assert.Equal(t, "SPY", got[0].Ticker)
	assert.True(t, got[0].ExDate.Equal(p.ExDate), "ex-date round trip")
	assert.InDelta(t, 0.5, got[0].RawAmount, 1e-9)
	require.NotNil(t, got[0].AdjAmount)
	assert.InDelta(t, 0.25, *got[0].AdjAmount, 1e-9)
	assert.True(t, got[0].IsManual)
	assert.Equal(t, int64(1700000000000), got[0].CreatedAt)

	assert.Nil(t, got[1].AdjAmount)
}

func TestPaymentStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPaymentStore(pool)

	require.NoError(t, store.Insert(ctx, testPayment("pg-dup", "SPY", 0, 0.5)))

	err := store.Insert(ctx, testPayment("pg-dup", "SPY", 0, 0.5))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestPaymentStore_InsertBulkAtomic(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPaymentStore(pool)

	require.NoError(t, store.Insert(ctx, testPayment("pg-b1", "SPY", 0, 0.5)))

	err := store.InsertBulk(ctx, []*domain.DividendPayment{
		testPayment("pg-b2", "SPY", 30, 0.5),
		testPayment("pg-b1", "SPY", 60, 0.5), // duplicate, rolls back batch
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	got, err := store.GetByTicker(ctx, "SPY")
	require.NoError(t, err)
	assert.Len(t, got, 1, "failed batch must not leave partial writes")
}

func TestPaymentStore_GetByDateRange(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPaymentStore(pool)

	require.NoError(t, store.InsertBulk(ctx, []*domain.DividendPayment{
		testPayment("pg-r1", "SPY", 0, 0.5),
		testPayment("pg-r2", "SPY", 30, 0.5),
		testPayment("pg-r3", "SPY", 60, 0.5),
		testPayment("pg-r4", "SPY", 90, 0.5),
	}))

	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	got, err := store.GetByDateRange(ctx, "SPY", base.AddDate(0, 0, 30), base.AddDate(0, 0, 60))
	require.NoError(t, err)

	// Inclusive on both ends.
	require.Len(t, got, 2)
	assert.Equal(t, "pg-r2", got[0].ID)
	assert.Equal(t, "pg-r3", got[1].ID)
}

func TestPaymentStore_EmptyTicker(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	got, err := NewPaymentStore(pool).GetByTicker(context.Background(), "NONE")
	require.NoError(t, err)
	assert.Empty(t, got)
}
