package pipeline

import (
	"testing"
	"time"

	"github.com/atlas-quant/zoneengine/internal/analyzer"
	"github.com/atlas-quant/zoneengine/internal/detection"
	"github.com/atlas-quant/zoneengine/internal/features"
	"github.com/atlas-quant/zoneengine/internal/registry"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/shopspring/decimal"
)

func buildTable(n int) *zonetypes.BarTable {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	table := zonetypes.NewBarTable()
	osc := make([]float64, n)
	for i := 0; i < n; i++ {
		table.Timestamps = append(table.Timestamps, t0.Add(time.Duration(i)*time.Hour))
		d := decimal.NewFromFloat(100 + float64(i%7))
		table.Open = append(table.Open, d)
		table.High = append(table.High, d)
		table.Low = append(table.Low, d)
		table.Close = append(table.Close, d)
		if i%6 < 3 {
			osc[i] = 1
		} else {
			osc[i] = -1
		}
	}
	_ = table.SetColumn("osc", osc)
	return table
}

func newTestPipeline() *ZoneAnalysisPipeline {
	reg := registry.New(nil)
	detection.RegisterDefaults(reg, nil)
	extractor := features.NewExtractor(nil, features.SubStrategySet{})
	zoneAnalyzer := analyzer.New(nil, extractor, nil)
	return New(nil, reg, nil, zoneAnalyzer)
}

func TestBuilderRequiresDetection(t *testing.T) {
	p := newTestPipeline()
	_, err := AnalyzeZones(p, buildTable(20)).Build()
	if err == nil {
		t.Fatalf("expected error when detect_zones was never called")
	}
}

func TestBuilderRunsZeroCrossing(t *testing.T) {
	p := newTestPipeline()
	result, err := AnalyzeZones(p, buildTable(30)).
		DetectZones("zero_crossing", map[string]interface{}{"indicator_col": "osc"}).
		WithMinDuration(2).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Zones) == 0 {
		t.Fatalf("expected at least one detected zone")
	}
}

func TestRunFailsWithoutZoneDetectionConfig(t *testing.T) {
	p := newTestPipeline()
	_, err := p.Run(buildTable(10), &zonetypes.ZoneAnalysisConfig{})
	if err == nil {
		t.Fatalf("expected configuration error")
	}
}
