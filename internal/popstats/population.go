// Package popstats computes population statistics, hypothesis tests,
// sequence analysis, clustering and regression over a run's zone
// features (spec.md §4.5 steps 2-6). Grounded on the teacher's
// internal/backtester statistics (distributional summaries over a
// float series) and internal/regime (transition-matrix-style sequence
// bookkeeping, k-means-adjacent state centroids).
package popstats

import (
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/atlas-quant/zoneengine/pkg/zstats"
)

// Summarize computes the Overall and ByType population statistics over
// a run's zone list and matching feature slice (spec.md §4.5 step 2).
// zones and features must be the same length and index-aligned.
func Summarize(zones zonetypes.ZoneList, feats []*zonetypes.ZoneFeatures) zonetypes.PopulationStatistics {
	byType := make(map[string][]*zonetypes.ZoneFeatures)
	for i, z := range zones {
		if i >= len(feats) || feats[i] == nil {
			continue
		}
		byType[z.Type] = append(byType[z.Type], feats[i])
	}

	result := zonetypes.PopulationStatistics{
		Overall: typeStatisticsOf(nonNil(feats)),
		ByType:  make(map[string]zonetypes.TypeStatistics, len(byType)),
	}
	for zoneType, fs := range byType {
		result.ByType[zoneType] = typeStatisticsOf(fs)
	}
	return result
}

func nonNil(feats []*zonetypes.ZoneFeatures) []*zonetypes.ZoneFeatures {
	out := make([]*zonetypes.ZoneFeatures, 0, len(feats))
	for _, f := range feats {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

func typeStatisticsOf(feats []*zonetypes.ZoneFeatures) zonetypes.TypeStatistics {
	durations := make([]float64, len(feats))
	returns := make([]float64, len(feats))
	amplitudes := make([]float64, len(feats))
	correlations := make([]float64, 0, len(feats))
	peaks := make([]float64, 0, len(feats))
	troughs := make([]float64, 0, len(feats))

	for i, f := range feats {
		durations[i] = float64(f.Duration)
		returns[i] = f.PriceReturn
		amplitudes[i] = f.HistAmplitude
		if f.CorrelationPriceHist != nil {
			correlations = append(correlations, *f.CorrelationPriceHist)
		}
		if f.PeakCount != nil {
			peaks = append(peaks, float64(*f.PeakCount))
		}
		if f.TroughCount != nil {
			troughs = append(troughs, float64(*f.TroughCount))
		}
	}

	return zonetypes.TypeStatistics{
		Count:              len(feats),
		Duration:           zstats.BuildDistribution(durations),
		Return:             zstats.BuildDistribution(returns),
		Amplitude:          zstats.BuildDistribution(amplitudes),
		CorrelationSummary: zstats.BuildDistribution(correlations),
		PeakCounts:         zstats.BuildDistribution(peaks),
		TroughCounts:       zstats.BuildDistribution(troughs),
	}
}
