package popstats

import (
	"testing"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

func featSet(returns []float64, durations []int, zoneType string) ([]*zonetypes.ZoneInfo, []*zonetypes.ZoneFeatures) {
	zones := make([]*zonetypes.ZoneInfo, len(returns))
	feats := make([]*zonetypes.ZoneFeatures, len(returns))
	for i := range returns {
		zones[i] = &zonetypes.ZoneInfo{ZoneID: i, Type: zoneType, Duration: durations[i]}
		feats[i] = &zonetypes.ZoneFeatures{Duration: durations[i], PriceReturn: returns[i]}
	}
	return zones, feats
}

func TestSummarizeOverallAndByType(t *testing.T) {
	zones, feats := featSet([]float64{0.1, 0.2, -0.1}, []int{3, 4, 5}, "bull")
	stats := Summarize(zonetypes.ZoneList(zones), feats)
	if stats.Overall.Count != 3 {
		t.Fatalf("expected overall count 3, got %d", stats.Overall.Count)
	}
	if stats.ByType["bull"].Count != 3 {
		t.Fatalf("expected bull count 3, got %d", stats.ByType["bull"].Count)
	}
}

func TestRunHypothesisTestsHandlesSmallSamples(t *testing.T) {
	results := RunHypothesisTests(map[string][]float64{"bull": {0.1}})
	if len(results) != 1 || results[0].Detail == "" {
		t.Fatalf("expected one insufficient-sample result, got %+v", results)
	}
}

func TestAnalyzeSequenceSkipsBelowThreshold(t *testing.T) {
	zones, _ := featSet([]float64{0.1, 0.2}, []int{3, 4}, "bull")
	seq := AnalyzeSequence(zonetypes.ZoneList(zones))
	if !seq.Skipped {
		t.Fatalf("expected sequence analysis to be skipped for 2 zones")
	}
}

func TestClusterAssignsAllPoints(t *testing.T) {
	vectors := [][]float64{{0, 0}, {0, 0.1}, {10, 10}, {10, 10.1}}
	result := Cluster(vectors, 2)
	if len(result.Labels) != 4 {
		t.Fatalf("expected 4 labels, got %d", len(result.Labels))
	}
	if result.Labels[0] != result.Labels[1] || result.Labels[2] != result.Labels[3] {
		t.Fatalf("expected nearby points clustered together: %+v", result.Labels)
	}
}

func TestRunRegressionsBelowThresholdSkips(t *testing.T) {
	feats := make([]*zonetypes.ZoneFeatures, 5)
	for i := range feats {
		feats[i] = &zonetypes.ZoneFeatures{Duration: i + 1, PriceReturn: float64(i) * 0.01}
	}
	if got := RunRegressions(feats); got != nil {
		t.Fatalf("expected nil regressions below threshold, got %+v", got)
	}
}
