// Package config loads the engine's runtime configuration (pipeline
// defaults, cache backend selection, worker pool sizing, metrics
// server address) via viper, grounded on the teacher's go.mod (viper
// is a direct dependency there) and its pkg/types config-struct style
// — mapstructure-tagged, nested, plain structs rather than a fluent builder.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CacheBackend selects which internal/cache.Store implementation to
// construct at startup.
type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendRedis  CacheBackend = "redis"
	CacheBackendNone   CacheBackend = "none"
)

// PipelineConfig carries the engine-wide defaults a pipeline run falls
// back to absent per-call overrides.
type PipelineConfig struct {
	DefaultMinDuration int  `mapstructure:"default_min_duration"`
	DefaultNClusters   int  `mapstructure:"default_n_clusters"`
	DefaultClustering  bool `mapstructure:"default_clustering"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  CacheBackend  `mapstructure:"backend"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
}

// WorkerPoolConfig sizes the optional parallel feature-extraction pool.
type WorkerPoolConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	NumWorkers int  `mapstructure:"num_workers"`
	QueueSize  int  `mapstructure:"queue_size"`
}

// MetricsConfig configures the observability HTTP surface.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

// Config is the top-level configuration tree.
type Config struct {
	LogLevel   string           `mapstructure:"log_level"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
	Cache      CacheConfig      `mapstructure:"cache"`
	WorkerPool WorkerPoolConfig `mapstructure:"worker_pool"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// setDefaults installs the fallback values Load reads if no config
// file, env var, or flag overrides them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("pipeline.default_min_duration", 2)
	v.SetDefault("pipeline.default_n_clusters", 3)
	v.SetDefault("pipeline.default_clustering", true)
	v.SetDefault("cache.backend", string(CacheBackendMemory))
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("worker_pool.enabled", false)
	v.SetDefault("worker_pool.num_workers", 0) // 0 means "use NumCPU"
	v.SetDefault("worker_pool.queue_size", 1024)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.host", "0.0.0.0")
	v.SetDefault("metrics.port", 9090)
}

// Load reads configuration from (in ascending priority order) built-in
// defaults, a config file named "zoneengine.yaml" on configPaths, and
// ZONEENGINE_-prefixed environment variables — the conventional viper
// layering, e.g. ZONEENGINE_CACHE_BACKEND=redis overrides cache.backend.
func Load(configPaths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ZONEENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("zoneengine")
	v.SetConfigType("yaml")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	if len(configPaths) == 0 {
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
