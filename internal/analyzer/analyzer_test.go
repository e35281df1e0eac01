package analyzer

import (
	"testing"
	"time"

	"github.com/atlas-quant/zoneengine/internal/features"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/shopspring/decimal"
)

func buildTable(n int) *zonetypes.BarTable {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	table := zonetypes.NewBarTable()
	osc := make([]float64, n)
	for i := 0; i < n; i++ {
		table.Timestamps = append(table.Timestamps, t0.Add(time.Duration(i)*time.Hour))
		d := decimal.NewFromFloat(100 + float64(i))
		table.Open = append(table.Open, d)
		table.High = append(table.High, d)
		table.Low = append(table.Low, d)
		table.Close = append(table.Close, d)
		osc[i] = float64(i%5) - 2
	}
	_ = table.SetColumn("osc", osc)
	return table
}

func buildZones(table *zonetypes.BarTable, n int) zonetypes.ZoneList {
	zones := make(zonetypes.ZoneList, n)
	step := table.Len() / n
	for i := 0; i < n; i++ {
		start := i * step
		end := start + step - 1
		zoneType := "bull"
		if i%2 == 1 {
			zoneType = "bear"
		}
		zones[i] = &zonetypes.ZoneInfo{
			ZoneID: i, Type: zoneType, StartIdx: start, EndIdx: end, Duration: end - start + 1,
			Data:             table.Slice(start, end),
			IndicatorContext: zonetypes.IndicatorContext{DetectionIndicator: "osc"},
		}
	}
	return zones
}

func TestAnalyzeEmptyYieldsEmptyResult(t *testing.T) {
	extractor := features.NewExtractor(nil, features.SubStrategySet{})
	a := New(nil, extractor, nil)
	result := a.Analyze(nil, buildTable(10), nil, nil)
	if len(result.Zones) != 0 {
		t.Fatalf("expected empty zones, got %d", len(result.Zones))
	}
}

func TestAnalyzeProducesStatisticsAndSequence(t *testing.T) {
	table := buildTable(30)
	zones := buildZones(table, 6)
	extractor := features.NewExtractor(nil, features.SubStrategySet{})
	a := New(nil, extractor, nil)
	cfg := &zonetypes.ZoneAnalysisConfig{
		ZoneDetection: zonetypes.DefaultZoneDetectionConfig("zero_crossing"),
	}
	result := a.Analyze(zones, table, cfg, nil)
	if result.Statistics.Overall.Count != 6 {
		t.Fatalf("expected 6 zones analyzed, got %d", result.Statistics.Overall.Count)
	}
	if result.SequenceAnalysis == nil || result.SequenceAnalysis.Skipped {
		t.Fatalf("expected sequence analysis to run for 6 zones")
	}
	if !result.Metadata.AnalysesRun["population_statistics"] {
		t.Fatalf("expected population_statistics to be recorded as run")
	}
}

func TestAnalyzeRunsClusteringWhenRequested(t *testing.T) {
	table := buildTable(40)
	zones := buildZones(table, 8)
	extractor := features.NewExtractor(nil, features.SubStrategySet{})
	a := New(nil, extractor, nil)
	cfg := &zonetypes.ZoneAnalysisConfig{
		ZoneDetection:     zonetypes.DefaultZoneDetectionConfig("zero_crossing"),
		PerformClustering: true,
		NClusters:         2,
	}
	result := a.Analyze(zones, table, cfg, nil)
	if result.Clustering == nil {
		t.Fatalf("expected clustering to run")
	}
	if len(result.Clustering.Labels) != 8 {
		t.Fatalf("expected 8 cluster labels, got %d", len(result.Clustering.Labels))
	}
}
