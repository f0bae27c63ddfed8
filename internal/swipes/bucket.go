package swipes

import (
	"math"
	"sort"
)

// BandCount is the number of percentile bands on the map.
const BandCount = 5

// Palette colors the bands from lowest to highest share.
var Palette = [BandCount]string{"#fd8d3c", "#fc4e2a", "#e31a1c", "#bd0026", "#800026"}

// LegendTicks are the color bar tick marks, in percentile.
var LegendTicks = []int{0, 20, 40, 60, 80, 100}

// Quantile returns the p-quantile of sorted using linear interpolation
// between the closest ranks. sorted must be ascending and non-empty.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 || p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Edges returns the k+1 band edges at quantiles 0, 1/k, ..., 1. It returns
// nil for an empty input.
func Edges(values []float64, k int) []float64 {
	if len(values) == 0 || k <= 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	edges := make([]float64, k+1)
	for i := 0; i <= k; i++ {
		edges[i] = Quantile(sorted, float64(i)/float64(k))
	}
	return edges
}

// Bucketize assigns each value the index of its band. Band i covers
// (edges[i], edges[i+1]]; band 0 also takes edges[0]. When edges repeat, a
// value lands in the first band whose upper edge reaches it.
func Bucketize(values, edges []float64) []int {
	bands := make([]int, len(values))
	k := len(edges) - 1
	if k <= 0 {
		return bands
	}
	for i, v := range values {
		// first upper edge >= v
		j := sort.Search(k, func(b int) bool { return edges[b+1] >= v })
		if j >= k {
			j = k - 1
		}
		bands[i] = j
	}
	return bands
}
