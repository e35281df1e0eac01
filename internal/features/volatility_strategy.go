package features

import (
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/atlas-quant/zoneengine/pkg/zstats"
)

// DefaultVolatilityStrategy computes realized volatility (stddev of
// close-to-close returns), average true range, and vol-of-vol (stddev
// of a rolling realized-vol series) over the zone window
// (SPEC_FULL.md §4 supplement).
type DefaultVolatilityStrategy struct {
	volOfVolWindow int
}

func NewDefaultVolatilityStrategy(params *zonetypes.VolatilityStrategyParams) VolatilitySubStrategy {
	window := 5
	if params != nil && params.VolOfVolWindow > 1 {
		window = params.VolOfVolWindow
	}
	return DefaultVolatilityStrategy{volOfVolWindow: window}
}

func (DefaultVolatilityStrategy) Name() string { return "volatility_default" }

func (s DefaultVolatilityStrategy) Compute(view ZoneView) (zonetypes.VolatilityMetrics, error) {
	close := view.Zone.Data.CloseFloats()
	high := view.Zone.Data.HighFloats()
	low := view.Zone.Data.LowFloats()
	if len(close) < 2 {
		return zonetypes.VolatilityMetrics{}, nil
	}

	returns := make([]float64, 0, len(close)-1)
	for i := 1; i < len(close); i++ {
		if close[i-1] == 0 {
			continue
		}
		returns = append(returns, close[i]/close[i-1]-1)
	}
	realizedVol := zstats.StdDev(returns)

	trueRanges := make([]float64, len(close))
	for i := range close {
		tr := high[i] - low[i]
		if i > 0 {
			if hc := absF(high[i] - close[i-1]); hc > tr {
				tr = hc
			}
			if lc := absF(low[i] - close[i-1]); lc > tr {
				tr = lc
			}
		}
		trueRanges[i] = tr
	}
	trueRangeAvg := zstats.Mean(trueRanges)

	volOfVol := rollingStdDevOfStdDev(returns, s.volOfVolWindow)

	return zonetypes.VolatilityMetrics{
		RealizedVol:  realizedVol,
		TrueRangeAvg: trueRangeAvg,
		VolOfVol:     volOfVol,
	}, nil
}

func rollingStdDevOfStdDev(returns []float64, window int) float64 {
	if len(returns) < window || window < 2 {
		return 0
	}
	rolling := make([]float64, 0, len(returns)-window+1)
	for i := 0; i+window <= len(returns); i++ {
		rolling = append(rolling, zstats.StdDev(returns[i:i+window]))
	}
	return zstats.StdDev(rolling)
}
