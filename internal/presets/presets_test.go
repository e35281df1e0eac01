package presets

import (
	"testing"
	"time"

	"github.com/atlas-quant/zoneengine/internal/analyzer"
	"github.com/atlas-quant/zoneengine/internal/detection"
	"github.com/atlas-quant/zoneengine/internal/features"
	"github.com/atlas-quant/zoneengine/internal/pipeline"
	"github.com/atlas-quant/zoneengine/internal/registry"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/shopspring/decimal"
)

func buildTable(n int) *zonetypes.BarTable {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	table := zonetypes.NewBarTable()
	for i := 0; i < n; i++ {
		table.Timestamps = append(table.Timestamps, t0.Add(time.Duration(i)*time.Hour))
		d := decimal.NewFromFloat(100 + float64(i%5))
		table.Open = append(table.Open, d)
		table.High = append(table.High, d)
		table.Low = append(table.Low, d)
		table.Close = append(table.Close, d)
	}
	return table
}

func newTestPipeline() *pipeline.ZoneAnalysisPipeline {
	reg := registry.New(nil)
	detection.RegisterDefaults(reg, nil)
	extractor := features.NewExtractor(nil, features.SubStrategySet{})
	zoneAnalyzer := analyzer.New(nil, extractor, nil)
	return pipeline.New(nil, reg, nil, zoneAnalyzer)
}

func TestAnalyzeMACDZonesFailsWithoutIndicatorColumn(t *testing.T) {
	p := newTestPipeline()
	_, err := AnalyzeMACDZones(p, buildTable(20), DefaultMACDParams(), DefaultOptions())
	if err == nil {
		t.Fatalf("expected error: macd_hist column is never realized without a wired indicator factory")
	}
}

func TestAnalyzePreloadedZonesRunsEndToEnd(t *testing.T) {
	p := newTestPipeline()
	table := buildTable(20)
	zones := []zonetypes.PreloadedZoneRow{
		{ZoneID: 0, Type: "bull", StartTime: table.Timestamps[0], EndTime: table.Timestamps[9]},
		{ZoneID: 1, Type: "bear", StartTime: table.Timestamps[10], EndTime: table.Timestamps[19]},
	}
	opts := DefaultOptions()
	opts.ZoneTypes = []string{"bull", "bear"}
	result, err := AnalyzePreloadedZones(p, table, zones, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(result.Zones))
	}
}

func TestRSIColumnNaming(t *testing.T) {
	if got := rsiColumnName(14); got != "RSI_14" {
		t.Fatalf("expected RSI_14, got %q", got)
	}
	if got := rsiColumnName(21); got != "RSI_21" {
		t.Fatalf("expected RSI_21, got %q", got)
	}
}
