package sim

import (
	"sort"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/eval"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/rng"
)

// sampleAssumptions draws one value per assumption for this run and
// replicates it across every timestep, since an assumption's value is
// fixed for the whole run (spec.md §4.4 step 1).
func sampleAssumptions(assumptions map[string]*ast.Assumption, state eval.State, timesteps []int, t0 int, src *rng.Source) {
	for _, name := range sortedNames(assumptions) {
		a := assumptions[name]
		base := 0.0
		if a.Value.Span != (diag.Span{}) {
			base = eval.Eval(a.Value, state, t0)
		}
		val := base
		if a.Uncertainty != nil {
			val = eval.SampleDistribution(*a.Uncertainty, state, t0, src, base)
		}
		setAcrossTimesteps(state, name, timesteps, t0, val)
	}
}

// sampleParameters draws one value per parameter for this run (spec.md
// §4.4 step 2): a ranged parameter is drawn uniformly over [min, max];
// otherwise its declared value is used as-is.
func sampleParameters(parameters map[string]*ast.Parameter, state eval.State, timesteps []int, t0 int, src *rng.Source) {
	for _, name := range sortedNames(parameters) {
		p := parameters[name]
		val := 0.0
		if p.Value.Span != (diag.Span{}) {
			val = eval.Eval(p.Value, state, t0)
		}
		if p.HasRange {
			min := eval.Eval(p.Min, state, t0)
			max := eval.Eval(p.Max, state, t0)
			val = src.Uniform(min, max)
		}
		setAcrossTimesteps(state, name, timesteps, t0, val)
	}
}

// sortedNames returns m's keys in ascending order, so the RNG draws of one
// run happen in the same sequence regardless of map iteration order.
func sortedNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func setAcrossTimesteps(state eval.State, name string, timesteps []int, t0 int, val float64) {
	if len(timesteps) == 0 {
		state.Set(name, t0, val)
		return
	}
	for _, y := range timesteps {
		state.Set(name, y, val)
	}
}

// evaluateVariables walks the causal order, evaluating every Variable node
// at each timestep (spec.md §4.4 step 3): an anchor series interpolates,
// a growth model evaluates directly, dependency-modulation multiplies the
// base by each dependency's percent value when a growth model is present
// (a provisional coupling rule, not applied without a growth model), and
// an uncertainty distribution perturbs the result.
func evaluateVariables(order []string, variables map[string]*ast.Variable, state eval.State, timesteps []int, t0 int, samples map[string]map[int][]float64, src *rng.Source) {
	for _, name := range order {
		v, ok := variables[name]
		if !ok {
			continue
		}
		var pts []eval.AnchorPoint
		if len(v.Anchors) > 0 {
			pts = eval.EvalAnchors(v.Anchors, state)
		}
		for _, year := range timesteps {
			var base float64
			switch {
			case len(pts) > 0:
				base = eval.Interpolate(pts, v.Interpolation, year)
			case v.Growth != nil:
				base = eval.EvalModel(*v.Growth, state, year, t0)
			}
			if v.Growth != nil && len(v.DependsOn) > 0 {
				mod := 1.0
				for _, dep := range v.DependsOn {
					mod *= 1 + state.Get(ast.DependencyBase(dep), year)*0.01
				}
				base *= mod
			}
			val := base
			if v.Uncertainty != nil {
				val = eval.SampleDistribution(*v.Uncertainty, state, year, src, base)
			}
			state.Set(name, year, val)
			appendSample(samples, name, year, val)
		}
	}
}

// evaluateBranches draws one activation decision per branch per run
// (spec.md §4.4 step 4): a branch whose condition evaluates true at any
// timestep is a candidate, and activates with probability b.Probability
// (default 0.5 when unset).
func evaluateBranches(branches map[string]*ast.Branch, state eval.State, timesteps []int, src *rng.Source, hits map[string]int) {
	for _, name := range sortedNames(branches) {
		b := branches[name]
		prob := 0.5
		if b.Probability != nil {
			prob = *b.Probability
		}
		triggered := false
		for _, year := range timesteps {
			if eval.Eval(b.Condition, state, year) != 0 {
				triggered = true
				break
			}
		}
		if triggered && src.Next() < prob {
			hits[name]++
		}
	}
}

// evaluateImpacts walks the causal order, evaluating every Impact node at
// each timestep (spec.md §4.4 step 5): an explicit formula takes
// precedence; otherwise the impact is the sum of its derives_from bases.
func evaluateImpacts(order []string, impacts map[string]*ast.Impact, state eval.State, timesteps []int, samples map[string]map[int][]float64) {
	for _, name := range order {
		im, ok := impacts[name]
		if !ok {
			continue
		}
		for _, year := range timesteps {
			var val float64
			if im.Formula.Span != (diag.Span{}) {
				val = eval.Eval(im.Formula, state, year)
			} else {
				for _, dep := range im.DerivesFrom {
					val += state.Get(ast.DependencyBase(dep), year)
				}
			}
			state.Set(name, year, val)
			appendSample(samples, name, year, val)
		}
	}
}
