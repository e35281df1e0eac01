package features

import (
	"testing"
	"time"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/shopspring/decimal"
)

func buildZone(closes []float64, zoneType string) *zonetypes.ZoneInfo {
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
		ZoneID:   0,
		Type:     zoneType,
		StartIdx: 0,
		EndIdx:   len(closes) - 1,
		Duration: len(closes),
		Data:     table,
		IndicatorContext: zonetypes.IndicatorContext{
			DetectionIndicator: "macd",
		},
	}
}

func TestExtractBasicMetrics(t *testing.T) {
	zone := buildZone([]float64{100, 102, 105, 103, 108}, "bull")
	extractor := NewExtractor(nil, SubStrategySet{})
	features, err := extractor.Extract(zone, nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if features.StartPrice != 100 || features.EndPrice != 108 {
		t.Fatalf("unexpected start/end price: %+v", features)
	}
	if features.Metadata.ResolvedIndicatorName != "macd" {
		t.Fatalf("expected resolved indicator macd, got %q", features.Metadata.ResolvedIndicatorName)
	}
	if features.DrawdownFromPeak == nil {
		t.Fatalf("expected drawdown_from_peak to be set for bull zone")
	}
}

func TestExtractFailsBelowMinDuration(t *testing.T) {
	zone := buildZone([]float64{100, 101}, "bull")
	extractor := NewExtractor(nil, SubStrategySet{})
	if _, err := extractor.Extract(zone, nil, 5); err == nil {
		t.Fatalf("expected error for duration below min_duration")
	}
}

func TestExtractWithSubStrategies(t *testing.T) {
	zone := buildZone([]float64{100, 102, 105, 103, 108, 110}, "bull")
	strategies := SubStrategySet{
		Shape:      NewDefaultShapeStrategy(nil),
		Divergence: NewDefaultDivergenceStrategy(nil),
		Volatility: NewDefaultVolatilityStrategy(nil),
		Volume:     NewDefaultVolumeStrategy(nil),
		Swing:      NewZigZagSwingStrategy(),
	}
	extractor := NewExtractor(nil, strategies)
	features, err := extractor.Extract(zone, nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if features.Metadata.ShapeMetrics == nil {
		t.Fatalf("expected shape metrics to be populated")
	}
	if features.Metadata.SwingMetrics == nil || !features.Metadata.SwingMetrics.NoSwingContext {
		t.Fatalf("expected swing metrics to report NoSwingContext when ctx is nil")
	}
}
