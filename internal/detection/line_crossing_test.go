package detection

import (
	"testing"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

func TestLineCrossingClassifiesByLeadingLine(t *testing.T) {
	line1 := []float64{1, 2, 3, 4, 1, 0}
	line2 := []float64{0, 0, 0, 0, 2, 2}
	table := buildTable(len(line1), nil)
	if err := table.SetColumn("line1", line1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := table.SetColumn("line2", line2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := zonetypes.DefaultZoneDetectionConfig("test")
	cfg.Rules["line1_col"] = "line1"
	cfg.Rules["line2_col"] = "line2"

	zones, err := NewLineCrossing().DetectZones(table, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d: %+v", len(zones), zones)
	}
	if zones[0].Type != "bull" || zones[1].Type != "bear" {
		t.Fatalf("unexpected zone sequence: %v %v", zones[0].Type, zones[1].Type)
	}
}
