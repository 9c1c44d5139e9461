package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList records access tokens revoked before their expiry, keyed
// by JTI. An entry only needs to outlive the token it revokes.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revokedKeyPrefix = "shopdesk:revoked:"

// RedisRevocationList shares revocations between instances through Redis
// keys that expire with the token.
type RedisRevocationList struct {
	client redis.Cmdable
}

func NewRedisRevocationList(client redis.Cmdable) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

func (r *RedisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKeyPrefix+jti, time.Now().Add(ttl).Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("revoke token %s: %w", jti, err)
	}
	return nil
}

func (r *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation of %s: %w", jti, err)
	}
	return n > 0, nil
}

// MemoryRevocationList keeps revocations in process. It serves single
// instance deployments without Redis; expired entries are swept on write.
type MemoryRevocationList struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{expires: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryRevocationList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.expires {
		if !now.Before(exp) {
			delete(m.expires, id)
		}
	}
	m.expires[jti] = now.Add(ttl)
	return nil
}

func (m *MemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.expires[jti]
	return ok && m.now().Before(exp), nil
}

// Len returns the number of entries currently held, expired ones included
func (m *MemoryRevocationList) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.expires)
}

var (
	_ RevocationList = (*RedisRevocationList)(nil)
	_ RevocationList = (*MemoryRevocationList)(nil)
)
