package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/cart"
)

func TestCartRepositoryMem_RoundTripIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepositoryMem()
	now := time.Now()

	c, err := cartdom.NewCart("sess-1", now)
	require.NoError(t, err)
	require.NoError(t, c.Add(1, 2, decimal.NewFromInt(150), now))
	require.NoError(t, repo.Upsert(ctx, c))

	// mutating the caller's copy must not leak into the store
	c.Items[0].Quantity = 99

	got, err := repo.GetBySessionID(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Quantity(1))

	missing, err := repo.GetBySessionID(ctx, "other")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCartRepositoryMem_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewCartRepositoryMem().WithClock(func() time.Time { return clock })

	c, err := cartdom.NewCart("sess-1", clock)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, c))

	clock = clock.Add(cartdom.DefaultCartTTL + time.Minute)

	got, err := repo.GetBySessionID(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCartRepositoryMem_Sweep(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewCartRepositoryMem().WithClock(func() time.Time { return clock })

	old, _ := cartdom.NewCart("old", clock)
	require.NoError(t, repo.Upsert(ctx, old))

	clock = clock.Add(cartdom.DefaultCartTTL + time.Hour)
	fresh, _ := cartdom.NewCart("fresh", clock)
	require.NoError(t, repo.Upsert(ctx, fresh))

	assert.Equal(t, 1, repo.Sweep())
	got, err := repo.GetBySessionID(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestCartRepositoryMem_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepositoryMem()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, _ := cartdom.NewCart("shared", now)
			_ = repo.Upsert(ctx, c)
			_, _ = repo.GetBySessionID(ctx, "shared")
		}()
	}
	wg.Wait()

	require.NoError(t, repo.DeleteBySessionID(ctx, "shared"))
	got, err := repo.GetBySessionID(ctx, "shared")
	require.NoError(t, err)
	assert.Nil(t, got)
}
