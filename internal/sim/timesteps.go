package sim

import "github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"

// BuildTimesteps constructs the ordered timestep year list from the
// scenario's timeframe (spec.md §4.4 "Timesteps"). Per spec.md §9's open
// question, monthly/weekly/daily resolutions are intentionally collapsed
// to one entry per year — the evaluator keys all per-run state by year
// only, so finer resolutions would not change the timestep set anyway.
func BuildTimesteps(tf *ast.Timeframe) []int {
	if tf == nil {
		return nil
	}
	start, end := tf.Start.Year, tf.End.Year
	if start > end {
		start, end = end, start
	}
	out := make([]int, 0, end-start+1)
	for y := start; y <= end; y++ {
		out = append(out, y)
	}
	return out
}
