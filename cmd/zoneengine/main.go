// Package main provides the zone analysis engine's server entry
// point: it loads configuration, builds the shared infrastructure (cache
// store, worker pool), and exposes the metrics/health HTTP surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/atlas-quant/zoneengine/config"
	"github.com/atlas-quant/zoneengine/internal/cache"
	"github.com/atlas-quant/zoneengine/internal/metricsserver"
	"github.com/atlas-quant/zoneengine/internal/workerpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	configDir := flag.String("config-dir", ".", "directory to search for zoneengine.yaml")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		panic(err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := setupLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting zone analysis engine",
		zap.String("cache_backend", string(cfg.Cache.Backend)),
		zap.Bool("worker_pool_enabled", cfg.WorkerPool.Enabled),
		zap.Bool("metrics_enabled", cfg.Metrics.Enabled))

	// The pipeline (internal/pipeline.Builder), analyzer, and cache
	// wrapper are library APIs a caller embedding this process
	// constructs directly, the way internal/presets' convenience
	// wrappers do; this process owns only their shared infrastructure
	// (the cache store backend, the worker pool, the metrics surface).
	store, err := buildCacheStore(cfg.Cache, logger)
	if err != nil {
		logger.Fatal("failed to initialize cache store", zap.Error(err))
	}
	logger.Info("cache layer ready", zap.String("store_type", fmt.Sprintf("%T", store)))

	var pool *workerpool.Pool
	if cfg.WorkerPool.Enabled {
		numWorkers := cfg.WorkerPool.NumWorkers
		if numWorkers <= 0 {
			numWorkers = runtime.NumCPU()
		}
		pool = workerpool.New(logger, &workerpool.Config{
			Name:            "feature-extraction",
			NumWorkers:      numWorkers,
			QueueSize:       cfg.WorkerPool.QueueSize,
			TaskTimeout:     30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			PanicRecovery:   true,
		})
		pool.Start()
	}

	metricsserver.Init()

	var metricsSrv *metricsserver.Server
	if cfg.Metrics.Enabled {
		metricsSrv = metricsserver.NewServer(logger, &metricsserver.Config{
			Host:         cfg.Metrics.Host,
			Port:         cfg.Metrics.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		})
		go func() {
			if err := metricsSrv.Start(); err != nil {
				logger.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("zone analysis engine ready")
	<-sigChan
	logger.Info("shutdown signal received")

	if pool != nil {
		if err := pool.Stop(); err != nil {
			logger.Error("error stopping worker pool", zap.Error(err))
		}
	}

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := metricsSrv.Stop(shutdownCtx); err != nil {
			logger.Error("error during metrics server shutdown", zap.Error(err))
		}
	}

	logger.Info("zone analysis engine stopped")
}

func buildCacheStore(cfg config.CacheConfig, logger *zap.Logger) (cache.Store, error) {
	switch cfg.Backend {
	case config.CacheBackendNone:
		return nil, nil
	case config.CacheBackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		client := redis.NewClient(opts)
		return cache.NewRedisStore(client, logger), nil
	default:
		return cache.NewMemoryStore(), nil
	}
}

func setupLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	zapCfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
