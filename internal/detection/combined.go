package detection

import (
	"github.com/atlas-quant/zoneengine/internal/registry"
	"github.com/atlas-quant/zoneengine/pkg/zerrors"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// Predicate evaluates a boolean vector, aligned to table rows, for one
// condition in a Combined detection rule.
type Predicate func(table *zonetypes.BarTable) ([]bool, error)

// Combined classifies each bar by ANDing or ORing a list of predicates
// together (spec.md §4.2.5).
type Combined struct{}

func NewCombined() registry.DetectionStrategy { return Combined{} }

func (Combined) Name() string        { return "combined" }
func (Combined) Description() string { return "classifies bars by combining an ordered list of predicates under AND/OR logic" }
func (Combined) SupportedZoneTypes() []string { return []string{"any"} }
func (Combined) RequiredRuleKeys() []string   { return []string{"conditions"} }

func (s Combined) DetectZones(table *zonetypes.BarTable, cfg *zonetypes.ZoneDetectionConfig) (zonetypes.ZoneList, error) {
	if err := registry.ValidateRules(s.Name(), s.RequiredRuleKeys(), cfg.Rules); err != nil {
		return nil, err
	}
	conditions, ok := cfg.Rules["conditions"].([]Predicate)
	if !ok {
		return nil, zerrors.Data("conditions rule must be a []detection.Predicate, got %T", cfg.Rules["conditions"])
	}
	if len(conditions) == 0 {
		return nil, zerrors.Configuration("combined strategy requires at least one condition")
	}

	logic := stringRule(cfg.Rules, "logic")
	if logic == "" {
		logic = "AND"
	}
	if logic != "AND" && logic != "OR" {
		return nil, zerrors.Configuration("combined strategy logic must be AND or OR, got %q", logic)
	}

	trueLabel, falseLabel := "active", "inactive"
	if zoneTypeMap, ok := cfg.Rules["zone_type_map"].(map[bool]string); ok {
		if v, ok := zoneTypeMap[true]; ok {
			trueLabel = v
		}
		if v, ok := zoneTypeMap[false]; ok {
			falseLabel = v
		}
	}

	n := table.Len()
	combined := make([]bool, n)
	if logic == "AND" {
		for i := range combined {
			combined[i] = true
		}
	}
	for _, cond := range conditions {
		vec, err := cond(table)
		if err != nil {
			return nil, zerrors.Data("combined strategy condition failed").Wrap(err)
		}
		if len(vec) != n {
			return nil, zerrors.Data("combined strategy condition returned %d values, expected %d", len(vec), n)
		}
		for i, v := range vec {
			if logic == "AND" {
				combined[i] = combined[i] && v
			} else {
				combined[i] = combined[i] || v
			}
		}
	}

	classes := make([]string, n)
	for i, v := range combined {
		if v {
			classes[i] = trueLabel
		} else {
			classes[i] = falseLabel
		}
	}

	runs := runLengthEncode(classes)
	return buildZones(table, cfg, runs, func(r run) zonetypes.IndicatorContext {
		extra := map[string]interface{}{
			"logic":          logic,
			"num_conditions": len(conditions),
		}
		for k, v := range cfg.Rules {
			if k == "conditions" {
				continue
			}
			extra[k] = v
		}
		return zonetypes.IndicatorContext{
			DetectionStrategy: s.Name(),
			DetectionRules:    echoRules(cfg.Rules),
			Extra:             extra,
		}
	}), nil
}
