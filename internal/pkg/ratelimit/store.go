package ratelimit

import (
	"context"
	"time"
)

// CounterStore tracks attempt counts with expiry. The engine never assumes a
// single-instance deployment: swap the store for a shared backend to share
// counters across replicas.
type CounterStore interface {
	// Incr bumps the counter at key, starting its expiry window on first
	// increment, and returns the new value.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}
