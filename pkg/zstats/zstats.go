// Package zstats provides the generic floating-point statistics the
// zone analysis engine runs over oscillator columns and per-zone
// feature populations. It extends the decimal-oriented helpers in the
// teacher's pkg/utils (CalculateMean, CalculateStdDev, ...) to plain
// float64, which is what the statistical machinery here (Pearson
// correlation, skewness, kurtosis, quantiles) operates on throughout.
package zstats

import (
	"math"
	"sort"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Variance returns the sample variance (N-1 denominator), or 0 if
// fewer than two values.
func Variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return ss / float64(len(xs)-1)
}

// StdDev returns the sample standard deviation.
func StdDev(xs []float64) float64 {
	return math.Sqrt(Variance(xs))
}

// Min returns the minimum value, or 0 for an empty slice.
func Min(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// Max returns the maximum value, or 0 for an empty slice.
func Max(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// Median returns the median via sorted-copy + midpoint.
func Median(xs []float64) float64 {
	return Percentile(xs, 50)
}

// Percentile returns the p-th percentile (0-100) using linear
// interpolation between closest ranks, the common convention also used
// by the teacher's VaR calculation in backtester.MetricsCalculator.
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Skewness returns the (population) Fisher-Pearson skewness.
func Skewness(xs []float64) float64 {
	n := float64(len(xs))
	if n < 3 {
		return 0
	}
	m := Mean(xs)
	sd := populationStdDev(xs, m)
	if sd == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		d := (x - m) / sd
		sum += d * d * d
	}
	return (n / ((n - 1) * (n - 2))) * sum
}

// Kurtosis returns the excess kurtosis (normal distribution -> 0).
func Kurtosis(xs []float64) float64 {
	n := float64(len(xs))
	if n < 4 {
		return 0
	}
	m := Mean(xs)
	sd := populationStdDev(xs, m)
	if sd == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		d := (x - m) / sd
		sum += d * d * d * d
	}
	num := n * (n + 1) * sum
	den := (n - 1) * (n - 2) * (n - 3)
	correction := 3 * (n - 1) * (n - 1) / ((n - 2) * (n - 3))
	return num/den - correction
}

func populationStdDev(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// PearsonCorrelation returns the Pearson correlation coefficient
// between two equal-length series, or (0, false) if undefined (fewer
// than 2 points, or either series has zero variance).
func PearsonCorrelation(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0, false
	}
	mx, my := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, false
	}
	return sxy / math.Sqrt(sxx*syy), true
}

// Diff returns the first difference of xs: len(xs)-1 elements, or nil
// if len(xs) < 2.
func Diff(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	out := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		out[i-1] = xs[i] - xs[i-1]
	}
	return out
}

// MaxAbs returns the maximum absolute value, or 0 for an empty slice.
func MaxAbs(xs []float64) float64 {
	var m float64
	for _, x := range xs {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}

// ArgMax returns the index of the largest element, or -1 if empty.
func ArgMax(xs []float64) int {
	if len(xs) == 0 {
		return -1
	}
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}

// ArgMin returns the index of the smallest element, or -1 if empty.
func ArgMin(xs []float64) int {
	if len(xs) == 0 {
		return -1
	}
	best := 0
	for i, x := range xs {
		if x < xs[best] {
			best = i
		}
	}
	return best
}

// Slope returns the least-squares slope of y against index 0..n-1.
func Slope(ys []float64) float64 {
	n := len(ys)
	if n < 2 {
		return 0
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	mx, my := Mean(xs), Mean(ys)
	var num, den float64
	for i := 0; i < n; i++ {
		dx := xs[i] - mx
		num += dx * (ys[i] - my)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// PeakTroughCount finds simple local extrema: a peak is a point
// strictly greater than both neighbours, a trough strictly less than
// both. Endpoints are never counted, matching a standard
// default-parameter local-extrema finder (spec.md §4.4 item 6).
func PeakTroughCount(xs []float64) (peaks, troughs int) {
	for i := 1; i < len(xs)-1; i++ {
		if xs[i] > xs[i-1] && xs[i] > xs[i+1] {
			peaks++
		} else if xs[i] < xs[i-1] && xs[i] < xs[i+1] {
			troughs++
		}
	}
	return peaks, troughs
}

// BuildDistribution assembles the standard Distribution record spec.md
// §4.5 step 2 requires, or the zero-count form for an empty input.
func BuildDistribution(xs []float64) zonetypes.Distribution {
	if len(xs) == 0 {
		return zonetypes.Distribution{}
	}
	return zonetypes.Distribution{
		Count:    len(xs),
		Mean:     Mean(xs),
		Median:   Median(xs),
		Std:      StdDev(xs),
		Min:      Min(xs),
		Max:      Max(xs),
		Q25:      Percentile(xs, 25),
		Q75:      Percentile(xs, 75),
		Skewness: Skewness(xs),
		Kurtosis: Kurtosis(xs),
	}
}
