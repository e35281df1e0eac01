package popstats

import (
	"math"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/atlas-quant/zoneengine/pkg/zstats"
)

// RunHypothesisTests runs the fixed set of hypothesis tests spec.md
// §4.5 step 3 calls for: per zone-type, is the mean price_return
// significantly different from zero; and, when both bull and bear
// populations exist, do their return distributions differ (spec.md
// §4.5 step 3, "configured hypothesis tests").
func RunHypothesisTests(returnsByType map[string][]float64) []zonetypes.HypothesisTestResult {
	results := make([]zonetypes.HypothesisTestResult, 0, len(returnsByType)+1)
	for zoneType, xs := range returnsByType {
		results = append(results, oneSampleTTest(zoneType+"_return_vs_zero", xs, 0))
	}
	if bull, ok := returnsByType["bull"]; ok {
		if bear, ok := returnsByType["bear"]; ok {
			results = append(results, twoSampleTTest("bull_vs_bear_return", bull, bear))
		}
	}
	return results
}

// oneSampleTTest tests whether the sample mean differs from mu0.
func oneSampleTTest(name string, xs []float64, mu0 float64) zonetypes.HypothesisTestResult {
	n := len(xs)
	if n < 2 {
		return zonetypes.HypothesisTestResult{Name: name, Detail: "insufficient sample size"}
	}
	mean := zstats.Mean(xs)
	se := zstats.StdDev(xs) / math.Sqrt(float64(n))
	if se == 0 {
		return zonetypes.HypothesisTestResult{Name: name, Detail: "zero variance, test undefined"}
	}
	t := (mean - mu0) / se
	p := twoTailedPFromT(t, float64(n-1))
	return zonetypes.HypothesisTestResult{
		Name: name, Statistic: t, PValue: p, Reject: p < 0.05,
		Detail: "one-sample t-test vs 0",
	}
}

// twoSampleTTest runs Welch's t-test (unequal variances).
func twoSampleTTest(name string, xs, ys []float64) zonetypes.HypothesisTestResult {
	nx, ny := len(xs), len(ys)
	if nx < 2 || ny < 2 {
		return zonetypes.HypothesisTestResult{Name: name, Detail: "insufficient sample size"}
	}
	mx, my := zstats.Mean(xs), zstats.Mean(ys)
	vx, vy := zstats.Variance(xs), zstats.Variance(ys)
	se := math.Sqrt(vx/float64(nx) + vy/float64(ny))
	if se == 0 {
		return zonetypes.HypothesisTestResult{Name: name, Detail: "zero pooled variance, test undefined"}
	}
	t := (mx - my) / se
	dof := welchDoF(vx, vy, nx, ny)
	p := twoTailedPFromT(t, dof)
	return zonetypes.HypothesisTestResult{
		Name: name, Statistic: t, PValue: p, Reject: p < 0.05,
		Detail: "Welch's two-sample t-test",
	}
}

func welchDoF(vx, vy float64, nx, ny int) float64 {
	num := (vx/float64(nx) + vy/float64(ny))
	num *= num
	denom := (vx*vx)/(float64(nx)*float64(nx)*float64(nx-1)) + (vy*vy)/(float64(ny)*float64(ny)*float64(ny-1))
	if denom == 0 {
		return float64(nx + ny - 2)
	}
	return num / denom
}

// twoTailedPFromT approximates a two-tailed p-value for a t-statistic
// using the normal approximation (accurate for dof beyond a handful of
// observations, which is the regime zone populations live in).
func twoTailedPFromT(t, dof float64) float64 {
	if dof <= 0 {
		dof = 1
	}
	z := t / math.Sqrt(1+t*t/(4*dof))
	p := 2 * (1 - standardNormalCDF(math.Abs(z)))
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}

func standardNormalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
