// Package detection implements the five zone-detection strategies
// defined in spec.md §4.2. All share the run-length-encode-then-filter
// contract in common.go; each file implements one strategy's per-bar
// classification rule plus its indicator_context shape.
package detection

import (
	"github.com/atlas-quant/zoneengine/internal/registry"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// run is one contiguous span of bars sharing the same class label.
type run struct {
	class    string
	startIdx int
	endIdx   int
}

// runLengthEncode groups a per-bar class sequence into contiguous runs.
func runLengthEncode(classes []string) []run {
	if len(classes) == 0 {
		return nil
	}
	runs := make([]run, 0)
	cur := run{class: classes[0], startIdx: 0, endIdx: 0}
	for i := 1; i < len(classes); i++ {
		if classes[i] == cur.class {
			cur.endIdx = i
			continue
		}
		runs = append(runs, cur)
		cur = run{class: classes[i], startIdx: i, endIdx: i}
	}
	runs = append(runs, cur)
	return runs
}

// buildZones turns a list of runs into a ZoneList: runs shorter than
// minDuration are dropped, runs whose class is not accepted by cfg are
// dropped, and surviving zones get sequential zone IDs (spec.md §4.2
// step 3). contextFor builds the IndicatorContext for a given run.
func buildZones(
	table *zonetypes.BarTable,
	cfg *zonetypes.ZoneDetectionConfig,
	runs []run,
	contextFor func(r run) zonetypes.IndicatorContext,
) zonetypes.ZoneList {
	zones := make(zonetypes.ZoneList, 0, len(runs))
	nextID := 0
	for _, r := range runs {
		duration := r.endIdx - r.startIdx + 1
		if duration < cfg.MinDuration {
			continue
		}
		if !cfg.AllowsType(r.class) {
			continue
		}
		zone := &zonetypes.ZoneInfo{
			ZoneID:           nextID,
			Type:             r.class,
			StartIdx:         r.startIdx,
			EndIdx:           r.endIdx,
			StartTime:        table.Timestamps[r.startIdx],
			EndTime:          table.Timestamps[r.endIdx],
			Duration:         duration,
			Data:             table.Slice(r.startIdx, r.endIdx),
			IndicatorContext: contextFor(r),
		}
		zones = append(zones, zone)
		nextID++
	}
	return zones
}

func validateCommon(strategyName string, requiredKeys []string, table *zonetypes.BarTable, cfg *zonetypes.ZoneDetectionConfig, columns ...string) error {
	if err := registry.ValidateRules(strategyName, requiredKeys, cfg.Rules); err != nil {
		return err
	}
	return registry.ValidateColumns(table, columns...)
}

func stringRule(rules map[string]interface{}, key string) string {
	v, _ := rules[key].(string)
	return v
}

func floatRule(rules map[string]interface{}, key string) (float64, bool) {
	switch v := rules[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func intRule(rules map[string]interface{}, key string) (int, bool) {
	switch v := rules[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// centeredRollingMean applies a centered rolling mean of the given
// window size, shrinking the window at the edges rather than padding
// (spec.md §4.2.1's optional smooth_window).
func centeredRollingMean(xs []float64, window int) []float64 {
	if window < 2 || len(xs) == 0 {
		return xs
	}
	half := window / 2
	out := make([]float64, len(xs))
	for i := range xs {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi >= len(xs) {
			hi = len(xs) - 1
		}
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += xs[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

func echoRules(rules map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(rules))
	for k, v := range rules {
		out[k] = v
	}
	return out
}
