package detection

import (
	"github.com/atlas-quant/zoneengine/internal/registry"
	"github.com/atlas-quant/zoneengine/pkg/zerrors"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// Threshold classifies each bar as "overbought", "oversold", or
// "neutral" against two fixed bands (spec.md §4.2.2).
type Threshold struct{}

func NewThreshold() registry.DetectionStrategy { return Threshold{} }

func (Threshold) Name() string        { return "threshold" }
func (Threshold) Description() string { return "classifies bars against a fixed upper/lower band on one indicator column" }
func (Threshold) SupportedZoneTypes() []string {
	return []string{"overbought", "oversold", "neutral"}
}
func (Threshold) RequiredRuleKeys() []string {
	return []string{"indicator_col", "upper_threshold", "lower_threshold"}
}

func (s Threshold) DetectZones(table *zonetypes.BarTable, cfg *zonetypes.ZoneDetectionConfig) (zonetypes.ZoneList, error) {
	col := stringRule(cfg.Rules, "indicator_col")
	if err := validateCommon(s.Name(), s.RequiredRuleKeys(), table, cfg, col); err != nil {
		return nil, err
	}
	upper, _ := floatRule(cfg.Rules, "upper_threshold")
	lower, _ := floatRule(cfg.Rules, "lower_threshold")
	if upper <= lower {
		return nil, zerrors.Configuration("threshold strategy requires upper_threshold > lower_threshold, got upper=%v lower=%v", upper, lower)
	}

	values, _ := table.Column(col)
	classes := make([]string, len(values))
	for i, v := range values {
		switch {
		case v > upper:
			classes[i] = "overbought"
		case v < lower:
			classes[i] = "oversold"
		default:
			classes[i] = "neutral"
		}
	}

	runs := runLengthEncode(classes)
	return buildZones(table, cfg, runs, func(r run) zonetypes.IndicatorContext {
		return zonetypes.IndicatorContext{
			DetectionStrategy:  s.Name(),
			DetectionIndicator: col,
			DetectionRules:     echoRules(cfg.Rules),
			Extra: map[string]interface{}{
				"thresholds": map[string]float64{"upper": upper, "lower": lower},
			},
		}
	}), nil
}
