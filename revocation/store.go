package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store records token ids that must no longer be accepted.
type Store interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisStore keeps revoked token ids in Redis until the token would have
// expired anyway, so every API instance sees the same denylist.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) key(tokenID string) string {
	return fmt.Sprintf("revoked:%s", tokenID)
}

func (s *RedisStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, s.key(tokenID), 1, ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type noopStore struct{}

func (noopStore) Revoke(context.Context, string, time.Time) error { return nil }

func (noopStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }

// NoopStore never revokes anything; logout then only discards the token
// client-side.
var NoopStore Store = noopStore{}
