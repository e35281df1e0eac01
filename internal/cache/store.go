package cache

import (
	"context"
	"time"
)

// Store is the opaque key/value interface spec.md §6 defines for cache
// storage: get/put/invalidate over string keys and Payload values.
// "Concurrent put" is benign: last writer wins (spec.md §5).
type Store interface {
	Get(ctx context.Context, key string) (*Payload, bool, error)
	Put(ctx context.Context, key string, payload Payload, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}
