package ratelimit

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/ajdiallo/chopnow/internal/config"
)

// Module provides a CounterStore: redis-backed when REDIS_ADDR is set,
// otherwise process-local.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) CounterStore {
	if p.Config.RedisAddr == "" {
		p.Logger.Info("using in-memory attempt counters; set REDIS_ADDR for multi-instance deployments")
		return NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddr})
	return NewRedisStore(client)
}
