package features

import (
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/atlas-quant/zoneengine/pkg/zstats"
)

// DefaultDivergenceStrategy flags price/oscillator divergence: price
// and primary-indicator slopes moving in opposite directions over a
// zone of at least MinLegBars (SPEC_FULL.md §4 supplement).
type DefaultDivergenceStrategy struct {
	minLegBars int
}

func NewDefaultDivergenceStrategy(params *zonetypes.DivergenceStrategyParams) DivergenceSubStrategy {
	minLeg := 3
	if params != nil && params.MinLegBars > 0 {
		minLeg = params.MinLegBars
	}
	return DefaultDivergenceStrategy{minLegBars: minLeg}
}

func (DefaultDivergenceStrategy) Name() string { return "divergence_default" }

func (s DefaultDivergenceStrategy) Compute(view ZoneView) (zonetypes.DivergenceMetrics, error) {
	if view.Zone.Data.Len() < s.minLegBars {
		return zonetypes.DivergenceMetrics{}, nil
	}
	close := view.Zone.Data.CloseFloats()
	indicator, ok := view.Zone.Data.Column(view.PrimaryIndicator)
	if !ok || len(indicator) == 0 {
		return zonetypes.DivergenceMetrics{}, nil
	}

	priceSlope := zstats.Slope(close)
	indicatorSlope := zstats.Slope(indicator)

	metrics := zonetypes.DivergenceMetrics{
		PriceSlope:     priceSlope,
		IndicatorSlope: indicatorSlope,
		SignalLineUsed: view.SignalLine != "",
	}

	switch {
	case priceSlope < 0 && indicatorSlope > 0:
		metrics.Detected = true
		metrics.Direction = "bullish"
	case priceSlope > 0 && indicatorSlope < 0:
		metrics.Detected = true
		metrics.Direction = "bearish"
	}
	return metrics, nil
}
