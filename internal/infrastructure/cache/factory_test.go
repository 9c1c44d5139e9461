package cache

import (
	"context"
	"testing"

	"github.com/shopdesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewBackend_Disabled(t *testing.T) {
	b := NewBackend(context.Background(), config.RedisConfig{Enabled: false}, nil)
	t.Cleanup(func() { _ = b.Close() })

	assert.IsType(t, &InMemoryDashboardCache{}, b.Dashboard)
	assert.Nil(t, b.Client)
}

func TestNewBackend_FallsBackWhenUnreachable(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	b := NewBackend(context.Background(), cfg, zap.New(core))
	t.Cleanup(func() { _ = b.Close() })

	assert.IsType(t, &InMemoryDashboardCache{}, b.Dashboard)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "falling back")
}

func TestBackend_CloseWithoutResources(t *testing.T) {
	assert.NoError(t, (&Backend{}).Close())
}
