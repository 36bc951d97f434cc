package sim

import "math"

// checkConvergence implements spec.md §4.4.1: for every (name, year)
// sample vector with at least 200 samples, compare the means of its two
// halves; convergence holds only if every such vector's relative
// difference is below threshold. The returned metric is the worst
// (largest) relative difference observed, for progress reporting.
func checkConvergence(samples map[string]map[int][]float64, threshold float64) (float64, bool) {
	var maxRel float64
	found := false
	converged := true
	for _, byYear := range samples {
		for _, vec := range byYear {
			if len(vec) < 200 {
				continue
			}
			found = true
			h := len(vec) / 2
			m1 := mean(vec[:h])
			m2 := mean(vec[h:])
			denom := math.Max(math.Abs(m1), math.Max(math.Abs(m2), 1e-10))
			rel := math.Abs(m1-m2) / denom
			if rel > maxRel {
				maxRel = rel
			}
			if rel >= threshold {
				converged = false
			}
		}
	}
	if !found {
		return 0, false
	}
	return maxRel, converged
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var s float64
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}
