// Package sim implements SDL's Monte Carlo simulator (spec.md §4.4): it
// re-validates the scenario, resolves the effective run configuration,
// then repeatedly samples assumptions and parameters, walks variables and
// impacts in causal topological order, and tracks branch activation —
// aggregating every (name, timestep) sample vector into a
// DistributionSummary once the run budget is exhausted. Grounded on the
// teacher's pkg/runtime/engine.Engine orchestration shape, stripped of
// everything outside spec.md §6.4's "no filesystem, network, or
// environment" boundary.
package sim

import (
	"fmt"
	"time"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/eval"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/rng"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/validate"
)

// Simulate re-validates scenario and, if valid, runs the Monte Carlo
// simulation (spec.md §4.4). It refuses to run when the scenario carries
// any error-severity diagnostic, since the simulator is also the external
// API entry point and must not produce output from invalid input (spec.md
// §6.1, §7). The returned diagnostics are always populated (even on a
// successful run, they may still hold warnings); err is non-nil only for
// an invalid scenario or a caller misuse (nil scenario).
func Simulate(scenario *ast.Scenario, override *Config) (*SimulationResult, []diag.Diagnostic, error) {
	if scenario == nil {
		return nil, nil, fmt.Errorf("sim: scenario is nil")
	}

	res := validate.Validate(scenario)
	if !res.Valid {
		return nil, res.Diagnostics, fmt.Errorf("sim: scenario failed validation")
	}

	eff := defaultEffective()
	applyOverride(&eff, override)
	applyDeclaration(&eff, firstSimulateDecl(res.Flat))

	t0 := 0
	if scenario.Metadata.Timeframe != nil {
		t0 = scenario.Metadata.Timeframe.Start.Year
	}
	timesteps := BuildTimesteps(scenario.Metadata.Timeframe)

	variables, assumptions, parameters, impacts, branches := partition(res.Symbols, res.Flat)

	src := rng.New(eff.Seed)
	samples := make(map[string]map[int][]float64, len(res.Symbols))
	branchHits := make(map[string]int, len(branches))

	started := time.Now()
	convergenceReached := false
	runsDone := 0

runLoop:
	for run := 1; run <= eff.Runs; run++ {
		if time.Since(started) > eff.Timeout {
			break
		}

		state := make(eval.State)
		sampleAssumptions(assumptions, state, timesteps, t0, src)
		sampleParameters(parameters, state, timesteps, t0, src)
		evaluateVariables(res.Graph.Order, variables, state, timesteps, t0, samples, src)
		evaluateBranches(branches, state, timesteps, src, branchHits)
		evaluateImpacts(res.Graph.Order, impacts, state, timesteps, samples)

		runsDone = run
		if run%100 == 0 {
			metric, converged := checkConvergence(samples, eff.Convergence)
			if eff.OnProgress != nil {
				eff.OnProgress(ProgressEvent{
					CompletedRuns:     run,
					TotalRuns:         eff.Runs,
					ElapsedMs:         time.Since(started).Milliseconds(),
					ConvergenceMetric: metric,
					HasConvergence:    converged,
				})
			}
			if converged {
				convergenceReached = true
				break runLoop
			}
		}
	}

	out := &SimulationResult{
		ScenarioName:       scenario.Name,
		RunID:              newRunID(eff.Seed),
		Runs:               runsDone,
		Method:             eff.Method,
		Seed:               eff.Seed,
		Timesteps:          timesteps,
		Variables:          make(map[string]VariableResult, len(variables)),
		Impacts:            make(map[string]ImpactResult, len(impacts)),
		Branches:           make(map[string]BranchResult, len(branches)),
		ConvergenceReached: convergenceReached,
		Elapsed:            time.Since(started),
	}

	for name, v := range variables {
		out.Variables[name] = buildVariableResult(name, v.Unit, timesteps, samples[name], eff.Percentiles)
	}
	for name, im := range impacts {
		out.Impacts[name] = ImpactResult{
			VariableResult: buildVariableResult(name, im.Unit, timesteps, samples[name], eff.Percentiles),
			Sensitivities:  map[string]float64{}, // spec.md §9 open question: left empty
		}
	}
	for name := range branches {
		rate := 0.0
		if runsDone > 0 {
			rate = float64(branchHits[name]) / float64(runsDone)
		}
		out.Branches[name] = BranchResult{Name: name, ActivationRate: rate, Overrides: map[string]float64{}}
	}

	return out, res.Diagnostics, nil
}

func buildVariableResult(name, unit string, timesteps []int, byYear map[int][]float64, percentiles []float64) VariableResult {
	summaries := make(map[int]DistributionSummary, len(timesteps))
	for _, y := range timesteps {
		summaries[y] = summarize(byYear[y], percentiles)
	}
	return VariableResult{Name: name, Unit: unit, Timesteps: timesteps, Summaries: summaries}
}

// partition splits the flattened, validated declaration set into the
// per-kind maps the run loop needs, keyed by declaration name.
func partition(symbols map[string]ast.Declaration, flat []ast.Declaration) (
	variables map[string]*ast.Variable,
	assumptions map[string]*ast.Assumption,
	parameters map[string]*ast.Parameter,
	impacts map[string]*ast.Impact,
	branches map[string]*ast.Branch,
) {
	variables = make(map[string]*ast.Variable)
	assumptions = make(map[string]*ast.Assumption)
	parameters = make(map[string]*ast.Parameter)
	impacts = make(map[string]*ast.Impact)
	branches = make(map[string]*ast.Branch)

	for name, d := range symbols {
		switch d.Kind {
		case ast.DeclVariable:
			variables[name] = d.Variable
		case ast.DeclAssumption:
			assumptions[name] = d.Assumption
		case ast.DeclParameter:
			parameters[name] = d.Parameter
		case ast.DeclImpact:
			impacts[name] = d.Impact
		}
	}
	// Branches have no causal-graph node and are skipped above, so collect
	// them directly from the flattened declaration list.
	for _, d := range flat {
		if d.Kind == ast.DeclBranch && d.Branch != nil {
			branches[d.Branch.Name] = d.Branch
		}
	}
	return
}

func firstSimulateDecl(flat []ast.Declaration) *ast.Simulate {
	for _, d := range flat {
		if d.Kind == ast.DeclSimulate && d.Simulate != nil {
			return d.Simulate
		}
	}
	return nil
}

func applyDeclaration(eff *effective, s *ast.Simulate) {
	if s == nil {
		return
	}
	if s.Runs != nil {
		eff.Runs = *s.Runs
	}
	if s.Method != "" {
		eff.Method = s.Method
	}
	if s.Seed != nil {
		eff.Seed = *s.Seed
	}
	if len(s.Percentiles) > 0 {
		eff.Percentiles = s.Percentiles
	}
	if s.Convergence != nil {
		eff.Convergence = *s.Convergence
	}
	if s.Timeout != nil {
		eff.Timeout = durationOf(*s.Timeout)
	}
}

func applyOverride(eff *effective, c *Config) {
	if c == nil {
		return
	}
	if c.Runs != nil {
		eff.Runs = *c.Runs
	}
	if c.Method != "" {
		eff.Method = c.Method
	}
	if c.Seed != nil {
		eff.Seed = *c.Seed
	}
	if len(c.Percentiles) > 0 {
		eff.Percentiles = c.Percentiles
	}
	if c.Convergence != nil {
		eff.Convergence = *c.Convergence
	}
	if c.Timeout != nil {
		eff.Timeout = *c.Timeout
	}
	if c.OnProgress != nil {
		eff.OnProgress = c.OnProgress
	}
}

// durationOf converts an ast.Duration (spec.md §2's y/m/w/d/s suffix
// literals) into a time.Duration, using calendar approximations for the
// coarser units since the simulator has no calendar of its own.
func durationOf(d ast.Duration) time.Duration {
	switch d.Unit {
	case 'y':
		return time.Duration(d.Amount * 365 * 24 * float64(time.Hour))
	case 'm':
		return time.Duration(d.Amount * 30 * 24 * float64(time.Hour))
	case 'w':
		return time.Duration(d.Amount * 7 * 24 * float64(time.Hour))
	case 'd':
		return time.Duration(d.Amount * 24 * float64(time.Hour))
	default: // 's'
		return time.Duration(d.Amount * float64(time.Second))
	}
}

func appendSample(samples map[string]map[int][]float64, name string, year int, value float64) {
	byYear, ok := samples[name]
	if !ok {
		byYear = make(map[int][]float64)
		samples[name] = byYear
	}
	byYear[year] = append(byYear[year], value)
}
