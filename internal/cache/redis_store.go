package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore is an optional, disk/network-backed cache store. Grounded
// on the teacher pack's cache.RedisClient (JSON-marshal-then-Set,
// JSON-unmarshal-on-Get), generalized from a single hand-rolled client
// struct to the Store interface this package defines.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore wraps an already-constructed redis.Client. Connectivity
// is the caller's responsibility (e.g. a startup-time Ping), matching
// the teacher's NewRedisClient, which pings once at construction and
// logs a warning on failure rather than erroring.
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, logger: logger}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Payload, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var payload Payload
	if err := json.Unmarshal([]byte(val), &payload); err != nil {
		s.logger.Warn("redis cache entry is not valid JSON, treating as miss", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return &payload, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, payload Payload, ttl time.Duration) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, buf, ttl).Err()
}

func (s *RedisStore) Invalidate(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
