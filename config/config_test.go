package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWithNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	require.Equal(t, 3, cfg.Pipeline.DefaultNClusters)
	require.True(t, cfg.Metrics.Enabled)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("cache:\n  backend: redis\n  redis_url: \"redis://localhost:6379\"\nworker_pool:\n  enabled: true\n  num_workers: 4\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zoneengine.yaml"), content, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	require.Equal(t, "redis://localhost:6379", cfg.Cache.RedisURL)
	require.True(t, cfg.WorkerPool.Enabled)
	require.Equal(t, 4, cfg.WorkerPool.NumWorkers)
}

func TestLoadHonorsEnvironmentOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ZONEENGINE_CACHE_BACKEND", "none")
	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, CacheBackendNone, cfg.Cache.Backend)
}
