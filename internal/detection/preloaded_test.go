package detection

import (
	"testing"
	"time"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

func TestPreloadedResolvesRowsByTimestamp(t *testing.T) {
	table := buildTable(10, nil)
	cfg := zonetypes.DefaultZoneDetectionConfig("test")
	cfg.ZoneTypes = map[string]bool{"any": true}
	cfg.Rules["zones_data"] = []zonetypes.PreloadedZoneRow{
		{ZoneID: 0, Type: "bull", StartTime: table.Timestamps[1], EndTime: table.Timestamps[4]},
		{ZoneID: 1, Type: "bear", StartTime: table.Timestamps[6], EndTime: table.Timestamps[8]},
	}

	zones, err := NewPreloaded().DetectZones(table, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("expected 2 resolved zones, got %d: %+v", len(zones), zones)
	}
	if zones[0].StartIdx != 1 || zones[0].EndIdx != 4 {
		t.Fatalf("unexpected first zone span: start=%d end=%d", zones[0].StartIdx, zones[0].EndIdx)
	}
}

func TestPreloadedDropsRowsWithNoMatchingBars(t *testing.T) {
	table := buildTable(5, nil)
	cfg := zonetypes.DefaultZoneDetectionConfig("test")
	cfg.ZoneTypes = map[string]bool{"any": true}
	farFuture := table.Timestamps[4].Add(100 * time.Hour)
	cfg.Rules["zones_data"] = []zonetypes.PreloadedZoneRow{
		{ZoneID: 0, Type: "bull", StartTime: farFuture, EndTime: farFuture.Add(time.Hour)},
	}

	zones, err := NewPreloadedWithLogger(nil).DetectZones(table, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 0 {
		t.Fatalf("expected unmatched row to be dropped, got %+v", zones)
	}
}
