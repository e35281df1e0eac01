package detection

import "testing"

func TestThresholdClassifiesOverboughtOversoldNeutral(t *testing.T) {
	indicator := []float64{90, 95, 50, 50, 10, 5}
	table := buildTable(len(indicator), indicator)
	cfg := defaultCfgWithRules(map[string]interface{}{
		"indicator_col":   "ind",
		"upper_threshold": 70.0,
		"lower_threshold": 30.0,
	})
	cfg.ZoneTypes = map[string]bool{"overbought": true, "oversold": true, "neutral": true}

	zones, err := NewThreshold().DetectZones(table, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 3 {
		t.Fatalf("expected 3 zones, got %d: %+v", len(zones), zones)
	}
	if zones[0].Type != "overbought" || zones[1].Type != "neutral" || zones[2].Type != "oversold" {
		t.Fatalf("unexpected zone sequence: %v %v %v", zones[0].Type, zones[1].Type, zones[2].Type)
	}
}

func TestThresholdRejectsInvertedBands(t *testing.T) {
	table := buildTable(5, []float64{1, 2, 3, 4, 5})
	cfg := defaultCfgWithRules(map[string]interface{}{
		"indicator_col":   "ind",
		"upper_threshold": 10.0,
		"lower_threshold": 20.0,
	})

	if _, err := NewThreshold().DetectZones(table, cfg); err == nil {
		t.Fatalf("expected an error when upper_threshold <= lower_threshold")
	}
}
