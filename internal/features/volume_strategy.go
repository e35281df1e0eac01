package features

import (
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/atlas-quant/zoneengine/pkg/zstats"
)

// DefaultVolumeStrategy summarizes volume behavior over the zone
// window and its correlation with the primary indicator
// (SPEC_FULL.md §4 supplement). Best-effort: a zone without a volume
// column yields the zero-value metrics rather than an error.
type DefaultVolumeStrategy struct{}

func NewDefaultVolumeStrategy(_ *zonetypes.VolumeStrategyParams) VolumeSubStrategy {
	return DefaultVolumeStrategy{}
}

func (DefaultVolumeStrategy) Name() string { return "volume_default" }

func (DefaultVolumeStrategy) Compute(view ZoneView) (zonetypes.VolumeMetrics, error) {
	if !view.Zone.Data.HasVolume() {
		return zonetypes.VolumeMetrics{}, nil
	}
	volume := view.Zone.Data.VolumeFloats()
	avgVolume := zstats.Mean(volume)
	volumeTrend := zstats.Slope(volume)

	var correlation float64
	if indicator, ok := view.Zone.Data.Column(view.PrimaryIndicator); ok {
		if c, valid := zstats.PearsonCorrelation(volume, indicator); valid {
			correlation = c
		}
	}

	var climaxRatio float64
	if avgVolume > 0 {
		climaxRatio = zstats.Max(volume) / avgVolume
	}

	return zonetypes.VolumeMetrics{
		AvgVolume:              avgVolume,
		VolumeTrend:            volumeTrend,
		VolumePriceCorrelation: correlation,
		ClimaxRatio:            climaxRatio,
	}, nil
}
