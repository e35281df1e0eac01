package pipeline

import (
	"time"

	"github.com/atlas-quant/zoneengine/internal/analyzer"
	"github.com/atlas-quant/zoneengine/internal/dataquality"
	"github.com/atlas-quant/zoneengine/internal/metricsserver"
	"github.com/atlas-quant/zoneengine/internal/registry"
	"github.com/atlas-quant/zoneengine/internal/swing"
	"github.com/atlas-quant/zoneengine/pkg/zerrors"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"go.uber.org/zap"
)

// ZoneAnalysisPipeline runs indicator realization, detection, optional
// swing-context construction, and analysis over one bar table
// (spec.md §4.6).
type ZoneAnalysisPipeline struct {
	logger           *zap.Logger
	strategies       *registry.Registry
	indicatorFactory IndicatorFactory
	analyzer         *analyzer.Analyzer
	quality          *dataquality.Validator
}

// New builds a pipeline. indicatorFactory may be nil if no run ever
// configures an indicator (spec.md §4.6 step 1: "columns already
// present in input" is the default). Every run advisory-checks its
// input against dataquality.NewValidator() before detection; a caller
// needing different thresholds (e.g. session-based markets) should
// build one directly rather than go through this constructor.
func New(logger *zap.Logger, strategies *registry.Registry, indicatorFactory IndicatorFactory, zoneAnalyzer *analyzer.Analyzer) *ZoneAnalysisPipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZoneAnalysisPipeline{
		logger:           logger,
		strategies:       strategies,
		indicatorFactory: indicatorFactory,
		analyzer:         zoneAnalyzer,
		quality:          dataquality.NewValidator(),
	}
}

// Run executes the full pipeline over table using cfg (spec.md §4.6
// steps 1-5).
func (p *ZoneAnalysisPipeline) Run(table *zonetypes.BarTable, cfg *zonetypes.ZoneAnalysisConfig) (result *zonetypes.ZoneAnalysisResult, err error) {
	start := time.Now()
	strategyName := "unknown"
	if cfg != nil && cfg.ZoneDetection != nil && cfg.ZoneDetection.StrategyName != "" {
		strategyName = cfg.ZoneDetection.StrategyName
	}
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metricsserver.RecordPipelineRun(strategyName, outcome, time.Since(start).Seconds())
	}()

	if cfg == nil || cfg.ZoneDetection == nil {
		return nil, zerrors.Configuration("zone_detection configuration is required")
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	// Step 0.5: advisory data quality gate — never blocks the run, but
	// a low score or critical issue is surfaced to the caller via
	// Metadata.Warnings rather than silently ignored.
	qualityReport := p.quality.Validate(table)
	if !qualityReport.Usable {
		p.logger.Warn("input data quality below threshold",
			zap.Int("score", qualityReport.Score), zap.Int("issues", len(qualityReport.Issues)))
	}

	// Step 1: indicator realization (best effort; missing columns do
	// not abort unless a strategy requires them later).
	working := table
	if cfg.Indicator != nil {
		realized, err := p.realizeIndicator(table, cfg.Indicator)
		if err != nil {
			return nil, err
		}
		working = realized
	}

	// Step 2: detection.
	strategy, err := p.strategies.Create(cfg.ZoneDetection.StrategyName)
	if err != nil {
		return nil, err
	}
	zones, err := strategy.DetectZones(working, cfg.ZoneDetection)
	if err != nil {
		return nil, err
	}
	if err := zones.Validate(working.Len(), cfg.ZoneDetection); err != nil {
		return nil, err
	}

	// Step 3: shared swing context (optional).
	var swingCtx *zonetypes.SwingContext
	if cfg.SwingScope == zonetypes.SwingScopeGlobal && cfg.SubStrategies.Swing != nil {
		deviation := cfg.SubStrategies.Swing.BaseDeviation
		if deviation <= 0 {
			deviation = 0.01
		}
		swingCtx = swing.BuildZigZag(working, deviation)
	}

	// Step 4: analysis.
	result = p.analyzer.Analyze(zones, working, cfg, swingCtx)

	// Step 5: result finalization.
	result.Metadata.ConfigEcho = cfg
	if !qualityReport.Usable {
		result.Metadata.Warnings = append(result.Metadata.Warnings, qualityReport.Recommendations...)
	}
	return result, nil
}

func (p *ZoneAnalysisPipeline) realizeIndicator(table *zonetypes.BarTable, cfg *zonetypes.IndicatorConfig) (*zonetypes.BarTable, error) {
	if p.indicatorFactory == nil {
		p.logger.Warn("indicator configured but no indicator factory wired, proceeding with input columns only",
			zap.String("indicator", cfg.Name))
		return table, nil
	}
	indicator, err := p.indicatorFactory.Create(cfg.Source, cfg.Name, cfg.Params)
	if err != nil {
		return nil, zerrors.Indicator("indicator factory failed to create %q from %q", cfg.Name, cfg.Source).Wrap(err)
	}
	computed, err := indicator.Calculate(table)
	if err != nil {
		return nil, zerrors.Indicator("indicator %q calculation failed", cfg.Name).Wrap(err)
	}

	working := table.Slice(0, table.Len()-1)
	for name, values := range computed.Columns {
		if err := working.SetColumn(name, values); err != nil {
			return nil, zerrors.Indicator("indicator %q produced misaligned column %q", cfg.Name, name).Wrap(err)
		}
	}
	return working, nil
}
