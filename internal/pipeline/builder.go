package pipeline

import (
	"github.com/atlas-quant/zoneengine/pkg/zerrors"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// Builder wraps ZoneAnalysisPipeline with the fluent convenience
// surface spec.md §4.6 describes: analyze_zones(table).with_indicator(...)
// .detect_zones(strategy, rules).with_strategies(...).with_swing_scope(...)
// .analyze(...).with_cache(...).build(). A minimal build requires only
// DetectZones; every other step defaults.
type Builder struct {
	pipeline *ZoneAnalysisPipeline
	table    *zonetypes.BarTable
	cfg      zonetypes.ZoneAnalysisConfig
	detected bool

	cacheEnabled bool
	cacheTTLSecs int
}

// AnalyzeZones starts a builder chain over table.
func AnalyzeZones(p *ZoneAnalysisPipeline, table *zonetypes.BarTable) *Builder {
	return &Builder{
		pipeline: p,
		table:    table,
		cfg: zonetypes.ZoneAnalysisConfig{
			SwingScope: zonetypes.SwingScopeNone,
		},
		cacheTTLSecs: 3600, // spec.md §4.7 default TTL
	}
}

// WithIndicator configures the indicator to realize before detection.
func (b *Builder) WithIndicator(source zonetypes.IndicatorSource, name string, params map[string]interface{}) *Builder {
	b.cfg.Indicator = &zonetypes.IndicatorConfig{Source: source, Name: name, Params: params}
	return b
}

// DetectZones configures the detection strategy and its rule set.
func (b *Builder) DetectZones(strategyName string, rules map[string]interface{}) *Builder {
	detectionCfg := zonetypes.DefaultZoneDetectionConfig(strategyName)
	detectionCfg.Rules = rules
	b.cfg.ZoneDetection = detectionCfg
	b.detected = true
	return b
}

// WithMinDuration overrides the default minimum zone duration.
func (b *Builder) WithMinDuration(minDuration int) *Builder {
	if b.cfg.ZoneDetection != nil {
		b.cfg.ZoneDetection.MinDuration = minDuration
	}
	return b
}

// WithZoneTypes overrides the default accepted zone-type set.
func (b *Builder) WithZoneTypes(types ...string) *Builder {
	if b.cfg.ZoneDetection == nil {
		return b
	}
	zoneTypes := make(map[string]bool, len(types))
	for _, t := range types {
		zoneTypes[t] = true
	}
	b.cfg.ZoneDetection.ZoneTypes = zoneTypes
	return b
}

// WithStrategies configures the feature-extraction sub-strategies.
func (b *Builder) WithStrategies(sub zonetypes.SubStrategyConfig) *Builder {
	b.cfg.SubStrategies = sub
	return b
}

// WithSwingPreset installs a named swing preset (a convenience over
// WithStrategies for the common zigzag configuration).
func (b *Builder) WithSwingPreset(name string, baseDeviation float64, autoThresholds bool) *Builder {
	b.cfg.SubStrategies.Swing = &zonetypes.SwingStrategyParams{
		StrategyName: name, BaseDeviation: baseDeviation, AutoThresholds: autoThresholds,
	}
	return b
}

// WithSwingScope sets whether the swing context is global or per-zone.
func (b *Builder) WithSwingScope(scope zonetypes.SwingScope) *Builder {
	b.cfg.SwingScope = scope
	return b
}

// AnalyzeOptions configures clustering/regression/validation flags for
// the terminal Analyze call.
type AnalyzeOptions struct {
	Clustering bool
	NClusters  int
	Regression bool
	Validation bool
}

// Analyze sets the optional analysis flags.
func (b *Builder) Analyze(opts AnalyzeOptions) *Builder {
	b.cfg.PerformClustering = opts.Clustering
	b.cfg.NClusters = opts.NClusters
	b.cfg.RunRegression = opts.Regression
	b.cfg.RunValidation = opts.Validation
	return b
}

// WithCache toggles result caching and its TTL; the builder itself
// does not perform caching (that is the caller's responsibility via
// internal/cache) but records the intent for the caller to honor.
func (b *Builder) WithCache(enable bool, ttlSeconds int) *Builder {
	b.cacheEnabled = enable
	if ttlSeconds > 0 {
		b.cacheTTLSecs = ttlSeconds
	}
	return b
}

// CacheEnabled reports whether WithCache(true, ...) was called.
func (b *Builder) CacheEnabled() bool { return b.cacheEnabled }

// CacheTTLSeconds returns the configured (or default) cache TTL.
func (b *Builder) CacheTTLSeconds() int { return b.cacheTTLSecs }

// Config returns the assembled configuration without running the
// pipeline, for callers (e.g. the cache layer) that need the
// configuration ahead of execution.
func (b *Builder) Config() *zonetypes.ZoneAnalysisConfig {
	cfg := b.cfg
	return &cfg
}

// Build validates the builder has a minimal configuration and runs the
// pipeline (spec.md §4.6: "build() fails if no detection configured").
func (b *Builder) Build() (*zonetypes.ZoneAnalysisResult, error) {
	if !b.detected {
		return nil, zerrors.Configuration("build() requires detect_zones(...) to have been called")
	}
	return b.pipeline.Run(b.table, &b.cfg)
}
