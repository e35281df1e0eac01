package detection

import (
	"testing"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

func TestZeroCrossingDetectsBullBearRuns(t *testing.T) {
	indicator := []float64{-1, -2, -1, 1, 2, 3, -1, -2}
	table := buildTable(len(indicator), indicator)
	cfg := defaultCfgWithRules(map[string]interface{}{"indicator_col": "ind"})

	zones, err := NewZeroCrossing().DetectZones(table, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 3 {
		t.Fatalf("expected 3 zones, got %d: %+v", len(zones), zones)
	}
	if zones[0].Type != "bear" || zones[1].Type != "bull" || zones[2].Type != "bear" {
		t.Fatalf("unexpected zone type sequence: %v %v %v", zones[0].Type, zones[1].Type, zones[2].Type)
	}
}

func TestZeroCrossingTreatsZeroAsBull(t *testing.T) {
	indicator := []float64{0, 1, -1, -2}
	table := buildTable(len(indicator), indicator)
	cfg := defaultCfgWithRules(map[string]interface{}{"indicator_col": "ind"})

	zones, err := NewZeroCrossing().DetectZones(table, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d: %+v", len(zones), zones)
	}
	if zones[0].Type != "bull" || zones[0].StartIdx != 0 || zones[0].EndIdx != 1 {
		t.Fatalf("expected a leading bull zone over [0,1], got %s [%d,%d]", zones[0].Type, zones[0].StartIdx, zones[0].EndIdx)
	}
	if zones[1].Type != "bear" {
		t.Fatalf("expected the second zone to be bear, got %s", zones[1].Type)
	}
}

func TestZeroCrossingRequiresIndicatorColumn(t *testing.T) {
	table := buildTable(5, nil)
	cfg := defaultCfgWithRules(map[string]interface{}{"indicator_col": "missing"})

	if _, err := NewZeroCrossing().DetectZones(table, cfg); err == nil {
		t.Fatalf("expected an error for a missing indicator column")
	}
}

func defaultCfgWithRules(rules map[string]interface{}) *zonetypes.ZoneDetectionConfig {
	cfg := zonetypes.DefaultZoneDetectionConfig("test")
	for k, v := range rules {
		cfg.Rules[k] = v
	}
	return cfg
}
