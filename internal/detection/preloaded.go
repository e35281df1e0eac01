package detection

import (
	"sort"
	"time"

	"github.com/atlas-quant/zoneengine/internal/registry"
	"github.com/atlas-quant/zoneengine/pkg/zerrors"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"go.uber.org/zap"
)

// Preloaded maps an externally supplied zone table onto bar indices by
// timestamp range (spec.md §4.2.4). Unlike the other strategies it does
// not classify individual bars; it resolves each external row directly
// to a [start_idx, end_idx] span.
type Preloaded struct {
	logger *zap.Logger
}

// NewPreloaded builds the preloaded-zones strategy with a no-op logger;
// use NewPreloadedWithLogger to record per-row drop warnings.
func NewPreloaded() registry.DetectionStrategy { return Preloaded{logger: zap.NewNop()} }

// NewPreloadedWithLogger builds the strategy with a caller-supplied
// logger for the "zone dropped, no matching bars" warnings spec.md
// §4.2.4 calls for.
func NewPreloadedWithLogger(logger *zap.Logger) registry.DetectionStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Preloaded{logger: logger}
}

func (Preloaded) Name() string        { return "preloaded" }
func (Preloaded) Description() string { return "maps an externally supplied zone table onto bar indices by timestamp" }
func (Preloaded) SupportedZoneTypes() []string { return []string{"any"} }
func (Preloaded) RequiredRuleKeys() []string   { return []string{"zones_data"} }

const defaultTimeTolerance = time.Minute

func (s Preloaded) DetectZones(table *zonetypes.BarTable, cfg *zonetypes.ZoneDetectionConfig) (zonetypes.ZoneList, error) {
	if err := registry.ValidateRules(s.Name(), s.RequiredRuleKeys(), cfg.Rules); err != nil {
		return nil, err
	}
	rows, ok := cfg.Rules["zones_data"].([]zonetypes.PreloadedZoneRow)
	if !ok {
		return nil, zerrors.Data("zones_data rule must be a []zonetypes.PreloadedZoneRow, got %T", cfg.Rules["zones_data"])
	}

	tol := defaultTimeTolerance
	if d, ok := cfg.Rules["time_tolerance"].(time.Duration); ok {
		tol = d
	}

	zones := make(zonetypes.ZoneList, 0, len(rows))
	nextID := 0
	for _, row := range rows {
		startIdx, endIdx, found := resolveTimeRange(table.Timestamps, row.StartTime.Add(-tol), row.EndTime.Add(tol))
		if !found {
			s.logger.Warn("preloaded zone dropped: no matching bars",
				zap.Int("zone_id", row.ZoneID), zap.Time("start_time", row.StartTime), zap.Time("end_time", row.EndTime))
			continue
		}
		duration := endIdx - startIdx + 1
		if duration < cfg.MinDuration {
			continue
		}
		if !cfg.AllowsType(row.Type) {
			continue
		}

		extra := map[string]interface{}{"source": "external"}
		for k, v := range row.Extra {
			extra[k] = v
		}

		zones = append(zones, &zonetypes.ZoneInfo{
			ZoneID:    nextID,
			Type:      row.Type,
			StartIdx:  startIdx,
			EndIdx:    endIdx,
			StartTime: table.Timestamps[startIdx],
			EndTime:   table.Timestamps[endIdx],
			Duration:  duration,
			Data:      table.Slice(startIdx, endIdx),
			IndicatorContext: zonetypes.IndicatorContext{
				DetectionStrategy: s.Name(),
				DetectionRules:    echoRules(cfg.Rules),
				Extra:             extra,
			},
		})
		nextID++
	}
	return zones, nil
}

// resolveTimeRange finds the first and last bar index whose timestamp
// falls in [lo, hi], or (0, 0, false) if none do.
func resolveTimeRange(timestamps []time.Time, lo, hi time.Time) (startIdx, endIdx int, found bool) {
	startIdx = sort.Search(len(timestamps), func(i int) bool {
		return !timestamps[i].Before(lo)
	})
	if startIdx >= len(timestamps) || timestamps[startIdx].After(hi) {
		return 0, 0, false
	}
	endIdx = startIdx
	for endIdx+1 < len(timestamps) && !timestamps[endIdx+1].After(hi) {
		endIdx++
	}
	return startIdx, endIdx, true
}
