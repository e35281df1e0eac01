// Package analyzer provides the universal zone analyzer: given a list
// of detected zones and the original bar table, it runs the full
// feature-extraction + population-statistics pipeline and assembles a
// ZoneAnalysisResult (spec.md §4.5). Grounded on the teacher's
// internal/orchestrator.TradingOrchestrator, which wires several
// independent analysis components (regime detection, sizing, Monte
// Carlo, optimization) behind one coordinating entry point the same
// way this analyzer wires feature extraction and population statistics
// behind Analyze.
package analyzer

import (
	"sort"
	"time"

	"github.com/atlas-quant/zoneengine/internal/features"
	"github.com/atlas-quant/zoneengine/internal/metricsserver"
	"github.com/atlas-quant/zoneengine/internal/popstats"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"go.uber.org/zap"
)

const (
	minZonesForClustering = 1 // caller-provided NClusters also gates this, per spec.md §4.5 step 5
	minZonesForRegression = 10
	minZonesForValidation = 20
)

// Analyzer runs the universal zone analysis pipeline over a detected
// zone list.
type Analyzer struct {
	logger    *zap.Logger
	extractor *features.Extractor
	validator zonetypes.Validator // optional external collaborator, spec.md §4.5 step 7
}

// New builds an Analyzer using the given feature extractor and an
// optional validator (nil disables step 7 entirely).
func New(logger *zap.Logger, extractor *features.Extractor, validator zonetypes.Validator) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger, extractor: extractor, validator: validator}
}

// Analyze runs steps 1-8 of spec.md §4.5 over zones (already detected
// against table) using the given config and shared swing context (nil
// if not configured).
func (a *Analyzer) Analyze(zones zonetypes.ZoneList, table *zonetypes.BarTable, cfg *zonetypes.ZoneAnalysisConfig, swingCtx *zonetypes.SwingContext) *zonetypes.ZoneAnalysisResult {
	if len(zones) == 0 {
		return zonetypes.Empty()
	}

	minDuration := 1
	strategyName := "unknown"
	if cfg != nil && cfg.ZoneDetection != nil {
		minDuration = cfg.ZoneDetection.MinDuration
		if cfg.ZoneDetection.StrategyName != "" {
			strategyName = cfg.ZoneDetection.StrategyName
		}
	}

	// Step 1: feature extraction per zone, best-effort.
	feats := make([]*zonetypes.ZoneFeatures, len(zones))
	survivingZones := make(zonetypes.ZoneList, 0, len(zones))
	survivingFeats := make([]*zonetypes.ZoneFeatures, 0, len(zones))
	for i, zone := range zones {
		extractStart := utcNow()
		f, err := a.extractor.Extract(zone, swingCtx, minDuration)
		metricsserver.ExtractionDuration.Observe(utcNow().Sub(extractStart).Seconds())
		if err != nil {
			a.logger.Warn("zone feature extraction failed, skipping zone", zap.Int("zone_id", zone.ZoneID), zap.Error(err))
			metricsserver.ExtractionFailuresTotal.Inc()
			continue
		}
		zone.Features = f
		feats[i] = f
		survivingZones = append(survivingZones, zone)
		survivingFeats = append(survivingFeats, f)
	}

	result := &zonetypes.ZoneAnalysisResult{
		Zones:    survivingZones,
		Metadata: zonetypes.ResultMetadata{AnalysesRun: make(map[string]bool)},
	}

	// Step 2: population statistics.
	result.Statistics = popstats.Summarize(survivingZones, survivingFeats)
	result.Metadata.AnalysesRun["population_statistics"] = true

	// Step 3: hypothesis tests.
	returnsByType := make(map[string][]float64)
	for i, z := range survivingZones {
		returnsByType[z.Type] = append(returnsByType[z.Type], survivingFeats[i].PriceReturn)
	}
	result.HypothesisTests = popstats.RunHypothesisTests(returnsByType)
	result.Metadata.AnalysesRun["hypothesis_tests"] = len(result.HypothesisTests) > 0

	// Step 4: sequence analysis (>= 3 zones).
	result.SequenceAnalysis = popstats.AnalyzeSequence(survivingZones)
	result.Metadata.AnalysesRun["sequence_analysis"] = !result.SequenceAnalysis.Skipped

	// Step 5: clustering (>= n_clusters zones, if requested).
	if cfg != nil && cfg.PerformClustering && cfg.NClusters > 0 && len(survivingZones) >= cfg.NClusters {
		vectors := make([][]float64, len(survivingFeats))
		for i, f := range survivingFeats {
			vectors[i] = popstats.FeatureVector(f)
		}
		clustering := popstats.Cluster(vectors, cfg.NClusters)
		result.Clustering = &clustering
		result.Metadata.AnalysesRun["clustering"] = true
	} else {
		result.Metadata.AnalysesRun["clustering"] = false
	}

	// Step 6: regression (> 10 zones, if requested).
	if cfg != nil && cfg.RunRegression && len(survivingFeats) > minZonesForRegression {
		result.RegressionResults = popstats.RunRegressions(survivingFeats)
		result.Metadata.AnalysesRun["regression"] = true
	} else {
		result.Metadata.AnalysesRun["regression"] = false
	}

	// Step 7: validation (> 20 zones, if requested — definition
	// deferred to external collaborators per spec.md §4.5 step 7).
	result.Metadata.AnalysesRun["validation"] = false
	if cfg != nil && cfg.RunValidation && len(survivingZones) > minZonesForValidation {
		if a.validator == nil {
			result.Metadata.Warnings = append(result.Metadata.Warnings, "validation requested but no validator configured")
		} else {
			validation, err := a.validator.Validate(result)
			if err != nil {
				result.Metadata.Warnings = append(result.Metadata.Warnings, "validation failed: "+err.Error())
			} else {
				result.ValidationResults = validation
				result.Metadata.AnalysesRun["validation"] = true
			}
		}
	}

	// Step 8: assemble metadata.
	countByType := make(map[string]int)
	for _, z := range survivingZones {
		countByType[z.Type]++
	}
	zoneTypes := make([]string, 0, len(countByType))
	for t := range countByType {
		zoneTypes = append(zoneTypes, t)
	}
	sort.Strings(zoneTypes)
	for _, t := range zoneTypes {
		metricsserver.RecordZonesDetected(strategyName, t, countByType[t])
	}
	result.Metadata.AnalysisTimestamp = utcNow()
	result.Metadata.InputRows = table.Len()
	result.Metadata.ZoneTypesSeen = zoneTypes
	result.Metadata.ConfigEcho = cfg

	return result
}

// utcNow is the analyzer's sole timestamp source, isolated so tests can
// substitute a fixed clock without touching the rest of the pipeline.
var utcNow = func() time.Time { return time.Now().UTC() }
