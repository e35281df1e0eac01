// Package presets offers thin convenience wrappers over
// internal/pipeline.Builder for the handful of indicator/detection
// combinations spec.md §4.8 names as common entry points. Each wrapper
// is 5-10 lines translating a small parameter set into builder calls;
// none of them perform analysis of their own (grounded on
// original_source's analysis/zones/presets.py).
package presets

import (
	"strconv"
	"time"

	"github.com/atlas-quant/zoneengine/internal/pipeline"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// Options carries the analysis-stage flags every preset shares.
type Options struct {
	MinDuration int
	ZoneTypes   []string
	Clustering  bool
	NClusters   int
	Regression  bool
	Validation  bool
	EnableCache bool
	CacheTTL    time.Duration
}

// DefaultOptions mirrors the originals' keyword defaults.
func DefaultOptions() Options {
	return Options{
		MinDuration: 2,
		Clustering:  true,
		NClusters:   3,
		EnableCache: true,
		CacheTTL:    time.Hour,
	}
}

func applyAnalysis(b *pipeline.Builder, opts Options) *pipeline.Builder {
	b = b.WithMinDuration(opts.MinDuration)
	if len(opts.ZoneTypes) > 0 {
		b = b.WithZoneTypes(opts.ZoneTypes...)
	}
	b = b.Analyze(pipeline.AnalyzeOptions{
		Clustering: opts.Clustering,
		NClusters:  opts.NClusters,
		Regression: opts.Regression,
		Validation: opts.Validation,
	})
	ttlSecs := int(opts.CacheTTL / time.Second)
	return b.WithCache(opts.EnableCache, ttlSecs)
}

// MACDParams configures analyze_macd_zones' indicator step.
type MACDParams struct {
	Fast, Slow, Signal int
	SmoothWindow       int // 0 means unset
}

// DefaultMACDParams mirrors fast=12, slow=26, signal=9.
func DefaultMACDParams() MACDParams { return MACDParams{Fast: 12, Slow: 26, Signal: 9} }

// AnalyzeMACDZones wires a custom MACD indicator into zero_crossing
// detection over its histogram column.
func AnalyzeMACDZones(p *pipeline.ZoneAnalysisPipeline, table *zonetypes.BarTable, params MACDParams, opts Options) (*zonetypes.ZoneAnalysisResult, error) {
	rules := map[string]interface{}{"indicator_col": "macd_hist"}
	if params.SmoothWindow > 0 {
		rules["smooth_window"] = params.SmoothWindow
	}
	b := pipeline.AnalyzeZones(p, table).
		WithIndicator(zonetypes.IndicatorSourceCustom, "macd", map[string]interface{}{
			"fast_period": params.Fast, "slow_period": params.Slow, "signal_period": params.Signal,
		}).
		DetectZones("zero_crossing", rules)
	return applyAnalysis(b, opts).Build()
}

// RSIParams configures analyze_rsi_zones' indicator and threshold step.
type RSIParams struct {
	Period                         int
	UpperThreshold, LowerThreshold float64
}

// DefaultRSIParams mirrors period=14, 70/30 thresholds.
func DefaultRSIParams() RSIParams {
	return RSIParams{Period: 14, UpperThreshold: 70, LowerThreshold: 30}
}

// AnalyzeRSIZones wires a pandas_ta-sourced RSI indicator into
// threshold detection.
func AnalyzeRSIZones(p *pipeline.ZoneAnalysisPipeline, table *zonetypes.BarTable, params RSIParams, opts Options) (*zonetypes.ZoneAnalysisResult, error) {
	col := rsiColumnName(params.Period)
	b := pipeline.AnalyzeZones(p, table).
		WithIndicator(zonetypes.IndicatorSourcePandasTA, "rsi", map[string]interface{}{"length": params.Period}).
		DetectZones("threshold", map[string]interface{}{
			"indicator_col":   col,
			"upper_threshold": params.UpperThreshold,
			"lower_threshold": params.LowerThreshold,
		})
	return applyAnalysis(b, opts).Build()
}

func rsiColumnName(period int) string {
	if period == 14 {
		return "RSI_14"
	}
	return "RSI_" + strconv.Itoa(period)
}

// AOParams configures analyze_ao_zones' Awesome Oscillator indicator.
type AOParams struct {
	Fast, Slow   int
	SmoothWindow int // 0 means unset
}

// DefaultAOParams mirrors fast=5, slow=34.
func DefaultAOParams() AOParams { return AOParams{Fast: 5, Slow: 34} }

// AnalyzeAOZones wires a pandas_ta-sourced Awesome Oscillator into
// zero_crossing detection. pandas_ta names the column AO_{fast}_{slow}.
func AnalyzeAOZones(p *pipeline.ZoneAnalysisPipeline, table *zonetypes.BarTable, params AOParams, opts Options) (*zonetypes.ZoneAnalysisResult, error) {
	col := "AO_" + strconv.Itoa(params.Fast) + "_" + strconv.Itoa(params.Slow)
	rules := map[string]interface{}{"indicator_col": col}
	if params.SmoothWindow > 0 {
		rules["smooth_window"] = params.SmoothWindow
	}
	b := pipeline.AnalyzeZones(p, table).
		WithIndicator(zonetypes.IndicatorSourcePandasTA, "ao", map[string]interface{}{
			"fast": params.Fast, "slow": params.Slow,
		}).
		DetectZones("zero_crossing", rules)
	return applyAnalysis(b, opts).Build()
}

// AnalyzePreloadedZones skips indicator/detection-rule configuration
// entirely and runs the preloaded strategy directly over externally
// supplied zone rows.
func AnalyzePreloadedZones(p *pipeline.ZoneAnalysisPipeline, table *zonetypes.BarTable, zonesData []zonetypes.PreloadedZoneRow, opts Options) (*zonetypes.ZoneAnalysisResult, error) {
	b := pipeline.AnalyzeZones(p, table).
		DetectZones("preloaded", map[string]interface{}{"zones_data": zonesData})
	return applyAnalysis(b, opts).Build()
}
