//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, fmt.Sprintf("%s:%s", host, port.Port()), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisDashboardCache(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()
	c := NewRedisDashboardCache(client, WithKeyPrefix("test:dashboard:"))

	t.Run("miss then hit", func(t *testing.T) {
		var got view
		found, err := c.Get(ctx, "overview", &got)
		require.NoError(t, err)
		assert.False(t, found)

		want := view{Orders: 4, Revenue: "99.90"}
		require.NoError(t, c.Set(ctx, "overview", want, time.Minute))

		found, err = c.Get(ctx, "overview", &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, want, got)

		ttl, err := client.TTL(ctx, "test:dashboard:overview").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("undecodable entry is a miss", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "test:dashboard:analytics", "not-json", time.Minute).Err())

		var got view
		found, err := c.Get(ctx, "analytics", &got)
		require.NoError(t, err)
		assert.False(t, found)

		exists, err := client.Exists(ctx, "test:dashboard:analytics").Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})

	t.Run("invalidate keeps foreign keys", func(t *testing.T) {
		for i := 0; i < 250; i++ {
			require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), view{Orders: int64(i)}, time.Minute))
		}
		require.NoError(t, client.Set(ctx, "shopdesk:revoked:jti", "1", time.Minute).Err())

		require.NoError(t, c.Invalidate(ctx))

		keys, err := client.Keys(ctx, "test:dashboard:*").Result()
		require.NoError(t, err)
		assert.Empty(t, keys)

		exists, err := client.Exists(ctx, "shopdesk:revoked:jti").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})
}
