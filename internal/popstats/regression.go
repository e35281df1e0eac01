package popstats

import "github.com/atlas-quant/zoneengine/pkg/zonetypes"

const minZonesForRegression = 10

// RunRegressions runs the two regression analyses spec.md §4.5 step 6
// calls for once more than 10 zones exist: a duration predictor
// (duration regressed on oscillator amplitude) and a return predictor
// (price_return regressed on duration) — see DESIGN.md for why these
// predictor/target pairings were chosen among the several plausible
// readings of "duration predictor, return predictor".
func RunRegressions(feats []*zonetypes.ZoneFeatures) []zonetypes.RegressionResult {
	if len(feats) <= minZonesForRegression {
		return nil
	}
	durations := make([]float64, len(feats))
	returns := make([]float64, len(feats))
	amplitudes := make([]float64, len(feats))
	for i, f := range feats {
		durations[i] = float64(f.Duration)
		returns[i] = f.PriceReturn
		amplitudes[i] = f.HistAmplitude
	}

	slope1, intercept1, r2_1 := simpleLinearRegression(amplitudes, durations)
	slope2, intercept2, r2_2 := simpleLinearRegression(durations, returns)

	return []zonetypes.RegressionResult{
		{
			Target:       "duration",
			Coefficients: map[string]float64{"hist_amplitude": slope1},
			Intercept:    intercept1,
			RSquared:     r2_1,
		},
		{
			Target:       "price_return",
			Coefficients: map[string]float64{"duration": slope2},
			Intercept:    intercept2,
			RSquared:     r2_2,
		},
	}
}

// simpleLinearRegression fits y = intercept + slope*x by ordinary least
// squares, returning (0,0,0) when x has zero variance.
func simpleLinearRegression(x, y []float64) (slope, intercept, rSquared float64) {
	n := len(x)
	if n < 2 {
		return 0, 0, 0
	}
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/float64(n), sumY/float64(n)

	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 {
		return 0, meanY, 0
	}
	slope = sxy / sxx
	intercept = meanY - slope*meanX
	if syy != 0 {
		rSquared = (sxy * sxy) / (sxx * syy)
	}
	return slope, intercept, rSquared
}
