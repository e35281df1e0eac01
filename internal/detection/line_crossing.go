package detection

import (
	"github.com/atlas-quant/zoneengine/internal/registry"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// LineCrossing classifies each bar as "bull" or "bear" by which of two
// columns leads (spec.md §4.2.3) — e.g. MACD line vs signal line.
type LineCrossing struct{}

func NewLineCrossing() registry.DetectionStrategy { return LineCrossing{} }

func (LineCrossing) Name() string        { return "line_crossing" }
func (LineCrossing) Description() string { return "classifies bars by which of two columns leads" }
func (LineCrossing) SupportedZoneTypes() []string { return []string{"bull", "bear"} }
func (LineCrossing) RequiredRuleKeys() []string   { return []string{"line1_col", "line2_col"} }

func (s LineCrossing) DetectZones(table *zonetypes.BarTable, cfg *zonetypes.ZoneDetectionConfig) (zonetypes.ZoneList, error) {
	line1 := stringRule(cfg.Rules, "line1_col")
	line2 := stringRule(cfg.Rules, "line2_col")
	if err := validateCommon(s.Name(), s.RequiredRuleKeys(), table, cfg, line1, line2); err != nil {
		return nil, err
	}

	v1, _ := table.Column(line1)
	v2, _ := table.Column(line2)
	classes := make([]string, len(v1))
	prev := "bull" // equality on the first bar resolves to bull
	for i := range v1 {
		switch {
		case v1[i] > v2[i]:
			classes[i] = "bull"
		case v1[i] < v2[i]:
			classes[i] = "bear"
		default:
			classes[i] = prev
		}
		prev = classes[i]
	}

	runs := runLengthEncode(classes)
	return buildZones(table, cfg, runs, func(r run) zonetypes.IndicatorContext {
		return zonetypes.IndicatorContext{
			DetectionStrategy:  s.Name(),
			DetectionIndicator: line1,
			SignalLine:         line2,
			DetectionRules:     echoRules(cfg.Rules),
		}
	}), nil
}
