package main

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/sim"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/pkg/sdl"
)

// filterNames resolves every variable/impact/branch name in result, narrowed
// by filterExpr (an expr-lang boolean expression over a `name` string), the
// way the teacher's runtime.evalCondition compiles and runs expr-lang
// expressions against a small env map.
func filterNames(result *sdl.SimulationResult, filterExpr string) ([]string, error) {
	all := make([]string, 0, len(result.Variables)+len(result.Impacts)+len(result.Branches))
	for name := range result.Variables {
		all = append(all, name)
	}
	for name := range result.Impacts {
		all = append(all, name)
	}
	for name := range result.Branches {
		all = append(all, name)
	}
	sort.Strings(all)

	if filterExpr == "" {
		return all, nil
	}

	program, err := expr.Compile(filterExpr, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile --filter %q: %w", filterExpr, err)
	}

	var selected []string
	for _, name := range all {
		out, err := expr.Run(program, map[string]any{"name": name})
		if err != nil {
			return nil, fmt.Errorf("eval --filter %q for %q: %w", filterExpr, name, err)
		}
		if matched, _ := out.(bool); matched {
			selected = append(selected, name)
		}
	}
	return selected, nil
}

func renderResult(result *sdl.SimulationResult, filterExpr string) error {
	names, err := filterNames(result, filterExpr)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s — %d runs (seed %d, %s)\n", result.ScenarioName, result.Runs, result.Seed, result.Method)
	if result.ConvergenceReached {
		fmt.Println(okStyle.Render("convergence reached"))
	}

	for _, name := range names {
		if v, ok := result.Variables[name]; ok {
			printSeries(v.Name, v.Unit, v.Timesteps, v.Summaries)
		}
		if im, ok := result.Impacts[name]; ok {
			printSeries(im.Name, im.Unit, im.Timesteps, im.Summaries)
		}
		if br, ok := result.Branches[name]; ok {
			fmt.Printf("branch %s: activation rate %.3f\n", br.Name, br.ActivationRate)
		}
	}
	return nil
}

func printSeries(name, unit string, timesteps []int, summaries map[int]sim.DistributionSummary) {
	fmt.Printf("%s", name)
	if unit != "" {
		fmt.Printf(" (%s)", unit)
	}
	fmt.Println(":")
	for _, year := range timesteps {
		s, ok := summaries[year]
		if !ok {
			continue
		}
		fmt.Printf("  %d: mean=%.4g median=%.4g p5=%.4g p95=%.4g\n",
			year, s.Mean, s.Median, s.Percentiles[5], s.Percentiles[95])
	}
}
