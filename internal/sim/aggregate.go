package sim

import (
	"math"
	"sort"
)

// summarize reduces one (name, timestep) sample vector to a
// DistributionSummary (spec.md §4.4.2): sort, mean/variance/stddev,
// median at the middle index, min/max at the ends, and each requested
// percentile at index ceil(p/100*n)-1, clamped into range.
func summarize(vec []float64, percentiles []float64) DistributionSummary {
	n := len(vec)
	if n == 0 {
		return DistributionSummary{Percentiles: map[float64]float64{}}
	}
	sorted := append([]float64(nil), vec...)
	sort.Float64s(sorted)

	m := mean(sorted)
	var variance float64
	for _, x := range sorted {
		d := x - m
		variance += d * d
	}
	variance /= float64(n)

	pctMap := make(map[float64]float64, len(percentiles))
	for _, p := range percentiles {
		idx := int(math.Ceil(p/100*float64(n))) - 1
		if idx < 0 {
			idx = 0
		}
		if idx > n-1 {
			idx = n - 1
		}
		pctMap[p] = sorted[idx]
	}

	return DistributionSummary{
		Mean:        m,
		Median:      sorted[n/2],
		StdDev:      math.Sqrt(variance),
		Min:         sorted[0],
		Max:         sorted[n-1],
		Percentiles: pctMap,
	}
}
