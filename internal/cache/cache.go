package cache

import (
	"context"
	"time"

	"github.com/atlas-quant/zoneengine/internal/metricsserver"
	"github.com/atlas-quant/zoneengine/pkg/zerrors"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"go.uber.org/zap"
)

// ZoneAnalysisCache wraps a Store with the version-aware load/save
// policy spec.md §4.7 describes (directly grounded on
// original_source's ZoneAnalysisCache.load/save). A nil Store disables
// caching entirely: Load always misses, Save is a no-op — matching the
// original's "cache_manager is None" behavior.
type ZoneAnalysisCache struct {
	store  Store
	logger *zap.Logger
}

// New builds a cache wrapper. store may be nil to disable caching.
func New(store Store, logger *zap.Logger) *ZoneAnalysisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZoneAnalysisCache{store: store, logger: logger}
}

// Load returns a cached result for (table, cfg), or (nil, false) on a
// miss — including a version-mismatch invalidation, which is handled
// locally and never surfaced as an error (spec.md §7,
// CacheVersionMismatch).
func (c *ZoneAnalysisCache) Load(ctx context.Context, table *zonetypes.BarTable, cfg *zonetypes.ZoneAnalysisConfig) (*zonetypes.ZoneAnalysisResult, bool, error) {
	if c.store == nil {
		metricsserver.RecordCacheLookup("disabled")
		return nil, false, nil
	}
	key, err := Key(table, cfg)
	if err != nil {
		metricsserver.RecordCacheLookup("error")
		return nil, false, err
	}

	payload, found, err := c.store.Get(ctx, key)
	if err != nil {
		metricsserver.RecordCacheLookup("error")
		return nil, false, err
	}
	if !found {
		metricsserver.RecordCacheLookup("miss")
		return nil, false, nil
	}
	if payload.CacheVersion < CurrentVersion {
		c.logger.Info("cache invalidated due to schema upgrade",
			zap.Int("cached_version", payload.CacheVersion), zap.Int("current_version", CurrentVersion))
		_ = c.store.Invalidate(ctx, key)
		metricsserver.RecordCacheLookup("stale")
		return nil, false, nil
	}
	metricsserver.RecordCacheLookup("hit")
	return payload.Result, true, nil
}

// Save wraps result in the current-version payload and stores it under
// the key derived from (table, cfg).
func (c *ZoneAnalysisCache) Save(ctx context.Context, table *zonetypes.BarTable, cfg *zonetypes.ZoneAnalysisConfig, result *zonetypes.ZoneAnalysisResult, ttl time.Duration) error {
	if c.store == nil {
		return nil
	}
	key, err := Key(table, cfg)
	if err != nil {
		return err
	}
	payload := NewPayload(result, time.Now().UTC())
	if err := c.store.Put(ctx, key, payload, ttl); err != nil {
		return zerrors.Internal("cache save failed").Wrap(err)
	}
	c.logger.Debug("saved zone analysis cache entry", zap.String("key", shortKey(key)))
	return nil
}

// Invalidate removes any cached entry for (table, cfg).
func (c *ZoneAnalysisCache) Invalidate(ctx context.Context, table *zonetypes.BarTable, cfg *zonetypes.ZoneAnalysisConfig) error {
	if c.store == nil {
		return nil
	}
	key, err := Key(table, cfg)
	if err != nil {
		return err
	}
	return c.store.Invalidate(ctx, key)
}

func shortKey(key string) string {
	if len(key) > 20 {
		return key[:20]
	}
	return key
}
