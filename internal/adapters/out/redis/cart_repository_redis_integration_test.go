//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	redisrepo "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/redis"
	cartdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/cart"
)

// Run with: go test -tags integration ./internal/adapters/out/redis/...
func TestCartRepositoryRedis(t *testing.T) {
	ctx := context.Background()

	rc, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Terminate(context.Background()) })

	host, err := rc.Host(ctx)
	require.NoError(t, err)
	port, err := rc.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client, err := redisrepo.NewClient(ctx, fmt.Sprintf("%s:%s", host, port.Port()), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repo := redisrepo.NewCartRepositoryRedis(client)

	t.Run("round trip keeps items and prices", func(t *testing.T) {
		now := time.Now().UTC()
		c, err := cartdom.NewCart("sess-1", now)
		require.NoError(t, err)
		c.TTL = 2 * time.Hour
		require.NoError(t, c.Add(7, 2, decimal.RequireFromString("150.50"), now))
		require.NoError(t, c.Add(3, 1, decimal.RequireFromString("40"), now))

		require.NoError(t, repo.Upsert(ctx, c))

		got, err := repo.GetBySessionID(ctx, " sess-1 ")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "sess-1", got.ID)
		assert.Equal(t, []int64{7, 3}, got.ProductIDs())
		assert.Equal(t, 2, got.Quantity(7))
		assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("150.50")))
		assert.True(t, got.Total().Equal(decimal.RequireFromString("341")))
		assert.True(t, got.CreatedAt.Equal(c.CreatedAt))
		assert.True(t, got.ExpiresAt.Equal(c.ExpiresAt))

		ttl, err := client.TTL(ctx, redisrepo.Key("sess-1")).Result()
		require.NoError(t, err)
		assert.Positive(t, ttl)
		assert.LessOrEqual(t, ttl, 2*time.Hour)
		assert.Greater(t, ttl, time.Hour)
	})

	t.Run("missing session is nil", func(t *testing.T) {
		got, err := repo.GetBySessionID(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("document without items loads empty", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, redisrepo.Key("bare"), `{}`, time.Minute).Err())

		got, err := repo.GetBySessionID(ctx, "bare")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "bare", got.ID)
		assert.NotNil(t, got.Items)
		assert.Empty(t, got.Items)
	})

	t.Run("delete removes the key", func(t *testing.T) {
		c, err := cartdom.NewCart("sess-2", time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, c))

		require.NoError(t, repo.DeleteBySessionID(ctx, "sess-2"))
		got, err := repo.GetBySessionID(ctx, "sess-2")
		require.NoError(t, err)
		assert.Nil(t, got)

		require.NoError(t, repo.DeleteBySessionID(ctx, "sess-2"))
	})
}
