package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a shared CounterStore for multi-instance deployments.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a counter store over an existing redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Incr bumps the counter atomically, attaching the expiry window on the
// first increment only.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Close releases the underlying redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
