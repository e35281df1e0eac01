package popstats

import "github.com/atlas-quant/zoneengine/pkg/zonetypes"

const maxKMeansIterations = 100

// FeatureVector builds the fixed-dimension vector clustering operates
// on: [duration, price_return, hist_amplitude,
// price_range_pct] (SPEC_FULL.md §4 supplement — the spec leaves the
// feature-vector shape open; these four fields are present on every
// zone regardless of configured sub-strategies).
func FeatureVector(f *zonetypes.ZoneFeatures) []float64 {
	return []float64{
		float64(f.Duration),
		f.PriceReturn,
		f.HistAmplitude,
		f.PriceRangePct,
	}
}

// Cluster runs k-means over the given feature vectors (spec.md §4.5
// step 5: at least n_clusters zones required, enforced by the caller).
// Initialization is deterministic (evenly spaced points in the input
// order) so repeated runs over identical input are reproducible.
func Cluster(vectors [][]float64, k int) zonetypes.ClusteringResult {
	n := len(vectors)
	if n == 0 || k <= 0 {
		return zonetypes.ClusteringResult{NClusters: k}
	}
	if k > n {
		k = n
	}
	dims := len(vectors[0])

	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		idx := i * n / k
		centroids[i] = append([]float64(nil), vectors[idx]...)
	}

	labels := make([]int, n)
	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, v := range vectors {
			best, bestDist := 0, squaredDist(v, centroids[0])
			for c := 1; c < k; c++ {
				if d := squaredDist(v, centroids[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, v := range vectors {
			c := labels[i]
			counts[c]++
			for d := 0; d < dims; d++ {
				sums[c][d] += v[d]
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for d := 0; d < dims; d++ {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
		if !changed {
			break
		}
	}

	var inertia float64
	for i, v := range vectors {
		inertia += squaredDist(v, centroids[labels[i]])
	}

	return zonetypes.ClusteringResult{
		NClusters: k,
		Labels:    labels,
		Centroids: centroids,
		Inertia:   inertia,
	}
}

func squaredDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
