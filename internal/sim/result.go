package sim

import "time"

// DistributionSummary summarises one (name, timestep) sample vector
// (spec.md §3.3, §4.4.2).
type DistributionSummary struct {
	Mean        float64
	Median      float64
	StdDev      float64
	Min         float64
	Max         float64
	Percentiles map[float64]float64
	Samples     []float64 // raw sample vector; Simulate leaves it nil
}

// VariableResult is one variable's (or impact's) ordered per-timestep
// summaries.
type VariableResult struct {
	Name      string
	Unit      string
	Timesteps []int
	Summaries map[int]DistributionSummary
}

// ImpactResult extends VariableResult with sensitivities, which the
// evaluator currently leaves empty (spec.md §9 open question).
type ImpactResult struct {
	VariableResult
	Sensitivities map[string]float64
}

// BranchResult is a branch's activation rate plus any per-variable
// overrides (spec.md §3.3); overrides are left empty, as the spec defines
// no concrete override mechanics beyond activation tracking.
type BranchResult struct {
	Name           string
	ActivationRate float64
	Overrides      map[string]float64
}

// SimulationResult is the full output of one simulate() call.
type SimulationResult struct {
	ScenarioName       string
	RunID              string
	Runs               int
	Method             string
	Seed               int64
	Timesteps          []int
	Variables          map[string]VariableResult
	Impacts            map[string]ImpactResult
	Branches           map[string]BranchResult
	ConvergenceReached bool
	Elapsed            time.Duration
}
