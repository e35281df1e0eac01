package detection

import (
	"github.com/atlas-quant/zoneengine/internal/registry"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// ZeroCrossing classifies each bar as "bull" or "bear" by the sign of a
// single detection_indicator column relative to zero (spec.md §4.2.1).
type ZeroCrossing struct{}

// NewZeroCrossing builds the zero-crossing strategy, ready for
// registration.
func NewZeroCrossing() registry.DetectionStrategy { return ZeroCrossing{} }

func (ZeroCrossing) Name() string        { return "zero_crossing" }
func (ZeroCrossing) Description() string { return "classifies bars by the sign of one oscillator column relative to zero" }
func (ZeroCrossing) SupportedZoneTypes() []string { return []string{"bull", "bear"} }
func (ZeroCrossing) RequiredRuleKeys() []string   { return []string{"indicator_col"} }

func (s ZeroCrossing) DetectZones(table *zonetypes.BarTable, cfg *zonetypes.ZoneDetectionConfig) (zonetypes.ZoneList, error) {
	col := stringRule(cfg.Rules, "indicator_col")
	if err := validateCommon(s.Name(), s.RequiredRuleKeys(), table, cfg, col); err != nil {
		return nil, err
	}

	values, _ := table.Column(col)
	if window, ok := intRule(cfg.Rules, "smooth_window"); ok && window > 1 {
		values = centeredRollingMean(values, window)
	}

	classes := make([]string, len(values))
	for i, v := range values {
		// Zero is treated as positive: bull ties break toward bull.
		if v >= 0 {
			classes[i] = "bull"
		} else {
			classes[i] = "bear"
		}
	}

	runs := runLengthEncode(classes)
	return buildZones(table, cfg, runs, func(r run) zonetypes.IndicatorContext {
		return zonetypes.IndicatorContext{
			DetectionStrategy:  s.Name(),
			DetectionIndicator: col,
			DetectionRules:     echoRules(cfg.Rules),
		}
	}), nil
}
