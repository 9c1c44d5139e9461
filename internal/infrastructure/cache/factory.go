package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/shopdesk/backend/internal/application/report"
	"github.com/shopdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Backend bundles the dashboard cache with the Redis client backing it, if
// any. Close releases whichever resource was opened.
type Backend struct {
	Dashboard report.DashboardCache
	Client    *redis.Client
	closer    func() error
}

// Close releases the backend
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

// NewBackend connects to Redis when it is enabled and falls back to an
// in-memory cache when it is disabled or unreachable
func NewBackend(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Enabled {
		client, err := NewRedisClient(ctx, cfg.Addr(), cfg.Password, cfg.DB)
		if err == nil {
			logger.Info("Using Redis dashboard cache", zap.String("addr", cfg.Addr()))
			return &Backend{
				Dashboard: NewRedisDashboardCache(client, WithRedisLogger(logger)),
				Client:    client,
				closer:    client.Close,
			}
		}
		logger.Warn("Redis unavailable, falling back to in-memory dashboard cache",
			zap.String("addr", cfg.Addr()), zap.Error(err))
	}

	mem := NewInMemoryDashboardCache()
	return &Backend{Dashboard: mem, closer: mem.Close}
}
