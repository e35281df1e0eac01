package workerpool

import (
	"testing"
	"time"

	"github.com/atlas-quant/zoneengine/internal/features"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/shopspring/decimal"
)

func buildZone(id, startIdx int, closes []float64, zoneType string) *zonetypes.ZoneInfo {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	table := zonetypes.NewBarTable()
	osc := make([]float64, len(closes))
	for i, c := range closes {
		table.Timestamps = append(table.Timestamps, t0.Add(time.Duration(i)*time.Hour))
		d := decimal.NewFromFloat(c)
		table.Open = append(table.Open, d)
		table.High = append(table.High, d)
		table.Low = append(table.Low, d)
		table.Close = append(table.Close, d)
		osc[i] = c - closes[0]
	}
	_ = table.SetColumn("macd", osc)
	return &zonetypes.ZoneInfo{
		ZoneID:   id,
		Type:     zoneType,
		StartIdx: startIdx,
		EndIdx:   startIdx + len(closes) - 1,
		Duration: len(closes),
		Data:     table,
		IndicatorContext: zonetypes.IndicatorContext{
			DetectionIndicator: "macd",
		},
	}
}

func TestExtractZonesParallelPreservesOrder(t *testing.T) {
	zones := zonetypes.ZoneList{
		buildZone(0, 0, []float64{100, 101, 102, 103}, "bull"),
		buildZone(1, 4, []float64{103, 101, 99, 97}, "bear"),
		buildZone(2, 8, []float64{97, 98, 100, 104}, "bull"),
	}
	extractor := features.NewExtractor(nil, features.SubStrategySet{})
	pool := New(nil, DefaultConfig("extract-test", 2))
	pool.Start()
	defer pool.Stop()

	results, errs := ExtractZonesParallel(pool, zones, nil, extractor, 2)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, err := range errs {
		if err != nil {
			t.Fatalf("unexpected error at index %d: %v", i, err)
		}
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("expected non-nil result at index %d", i)
		}
		if r.ZoneID != zones[i].ZoneID {
			t.Fatalf("result out of order: index %d has ZoneID %d, want %d", i, r.ZoneID, zones[i].ZoneID)
		}
	}
}
