package detection

import (
	"testing"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

func alwaysTrue(n int) Predicate {
	return func(table *zonetypes.BarTable) ([]bool, error) {
		out := make([]bool, n)
		for i := range out {
			out[i] = true
		}
		return out, nil
	}
}

func firstHalfTrue(n int) Predicate {
	return func(table *zonetypes.BarTable) ([]bool, error) {
		out := make([]bool, n)
		for i := 0; i < n/2; i++ {
			out[i] = true
		}
		return out, nil
	}
}

func TestCombinedANDLogic(t *testing.T) {
	table := buildTable(6, nil)
	cfg := zonetypes.DefaultZoneDetectionConfig("test")
	cfg.ZoneTypes = map[string]bool{"any": true}
	cfg.Rules["conditions"] = []Predicate{alwaysTrue(6), firstHalfTrue(6)}
	cfg.Rules["logic"] = "AND"

	zones, err := NewCombined().DetectZones(table, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones (active then inactive), got %d: %+v", len(zones), zones)
	}
	if zones[0].Type != "active" || zones[1].Type != "inactive" {
		t.Fatalf("unexpected zone sequence: %v %v", zones[0].Type, zones[1].Type)
	}
}

func TestCombinedRejectsEmptyConditions(t *testing.T) {
	table := buildTable(4, nil)
	cfg := zonetypes.DefaultZoneDetectionConfig("test")
	cfg.Rules["conditions"] = []Predicate{}

	if _, err := NewCombined().DetectZones(table, cfg); err == nil {
		t.Fatalf("expected an error for zero conditions")
	}
}

func TestCombinedRejectsInvalidLogic(t *testing.T) {
	table := buildTable(4, nil)
	cfg := zonetypes.DefaultZoneDetectionConfig("test")
	cfg.Rules["conditions"] = []Predicate{alwaysTrue(4)}
	cfg.Rules["logic"] = "XOR"

	if _, err := NewCombined().DetectZones(table, cfg); err == nil {
		t.Fatalf("expected an error for an unsupported logic operator")
	}
}
