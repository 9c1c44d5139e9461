package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopdesk/backend/internal/application/report"
	"go.uber.org/zap"
)

const (
	defaultKeyPrefix     = "shopdesk:dashboard:"
	defaultScanBatchSize = 100
	pingTimeout          = 5 * time.Second
)

// NewRedisClient connects to addr and verifies the connection with PING
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisDashboardCache stores dashboard views as JSON strings in Redis so
// every instance serves the same snapshot
type RedisDashboardCache struct {
	client    redis.Cmdable
	keyPrefix string
	logger    *zap.Logger
}

// RedisDashboardCacheOption configures a RedisDashboardCache
type RedisDashboardCacheOption func(*RedisDashboardCache)

// WithKeyPrefix overrides the key namespace
func WithKeyPrefix(prefix string) RedisDashboardCacheOption {
	return func(c *RedisDashboardCache) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// WithRedisLogger sets the logger
func WithRedisLogger(logger *zap.Logger) RedisDashboardCacheOption {
	return func(c *RedisDashboardCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRedisDashboardCache creates a cache on an existing client. The caller
// keeps ownership of the client.
func NewRedisDashboardCache(client redis.Cmdable, opts ...RedisDashboardCacheOption) *RedisDashboardCache {
	c := &RedisDashboardCache{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get decodes the cached value of key into dest
func (c *RedisDashboardCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read dashboard cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// A stale layout from an older release is treated as a miss
		c.logger.Warn("Discarding undecodable dashboard entry", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, c.keyPrefix+key).Err()
		return false, nil
	}
	return true, nil
}

// Set stores value under key for ttl
func (c *RedisDashboardCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard view: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write dashboard cache: %w", err)
	}
	return nil
}

// Invalidate deletes every key under the cache prefix
func (c *RedisDashboardCache) Invalidate(ctx context.Context) error {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan dashboard keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete dashboard keys: %w", err)
			}
			deleted += n
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	c.logger.Debug("Dashboard cache invalidated", zap.Int64("deleted", deleted))
	return nil
}

var _ report.DashboardCache = (*RedisDashboardCache)(nil)
