package sim

import (
	"testing"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
)

func buildScenario(runs int, seed int64) *ast.Scenario {
	linear := ast.Expr{
		Kind:        ast.ExprModel,
		ModelFamily: ast.ModelLinear,
		ModelArgs: []ast.NamedArg{
			{Name: "intercept", Value: ast.Expr{Kind: ast.ExprNumber, NumberValue: 10}},
			{Name: "slope", Value: ast.Expr{Kind: ast.ExprNumber, NumberValue: 1}},
		},
	}
	normalShorthand := ast.Expr{
		Kind:       ast.ExprDistribution,
		DistFamily: ast.DistNormal,
		PosArgs:    []ast.Expr{{Kind: ast.ExprNumber, NumberValue: 5}},
	}

	output := &ast.Variable{
		Name:          "output",
		Growth:        &linear,
		Uncertainty:   &normalShorthand,
		Interpolation: "linear",
	}
	revenue := &ast.Assumption{
		Name: "base_rate",
		Value: ast.Expr{
			Kind:        ast.ExprNumber,
			NumberValue: 2,
			Span:        diag.Span{End: diag.Location{Offset: 1}},
		},
	}
	simCfg := &ast.Simulate{Runs: &runs, Seed: &seed}

	return &ast.Scenario{
		Name: "test scenario",
		Metadata: ast.Metadata{
			Timeframe: &ast.Timeframe{Start: ast.Date{Year: 2020}, End: ast.Date{Year: 2022}},
		},
		Declarations: []ast.Declaration{
			{Kind: ast.DeclAssumption, Assumption: revenue},
			{Kind: ast.DeclVariable, Variable: output},
			{Kind: ast.DeclSimulate, Simulate: simCfg},
		},
	}
}

func TestSimulateDeterministicForFixedSeed(t *testing.T) {
	a, diags1, err := Simulate(buildScenario(50, 42), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v (diags: %v)", err, diags1)
	}
	b, _, err := Simulate(buildScenario(50, 42), nil)
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}

	av := a.Variables["output"].Summaries[2020]
	bv := b.Variables["output"].Summaries[2020]
	if av.Mean != bv.Mean {
		t.Fatalf("same seed produced different means: %v != %v", av.Mean, bv.Mean)
	}
}

func TestSimulateProducesTimestepsAndRuns(t *testing.T) {
	result, _, err := Simulate(buildScenario(100, 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Runs != 100 {
		t.Fatalf("Runs = %d, want 100", result.Runs)
	}
	if len(result.Timesteps) != 3 {
		t.Fatalf("Timesteps = %v, want 3 entries (2020..2022)", result.Timesteps)
	}
	vr, ok := result.Variables["output"]
	if !ok {
		t.Fatalf("missing variable result for output")
	}
	for _, y := range result.Timesteps {
		s, ok := vr.Summaries[y]
		if !ok {
			t.Fatalf("missing summary for year %d", y)
		}
		if len(s.Percentiles) == 0 {
			t.Fatalf("expected default percentiles to be populated")
		}
	}
}

func TestSimulateRejectsNilScenario(t *testing.T) {
	if _, _, err := Simulate(nil, nil); err == nil {
		t.Fatalf("expected an error for a nil scenario")
	}
}

func TestSimulateRejectsInvalidScenario(t *testing.T) {
	// A timeframe with start >= end is an SDL-E008 error (spec.md §4.3 phase 2).
	bad := &ast.Scenario{
		Name: "broken",
		Metadata: ast.Metadata{
			Timeframe: &ast.Timeframe{Start: ast.Date{Year: 2025}, End: ast.Date{Year: 2020}},
		},
	}
	if _, _, err := Simulate(bad, nil); err == nil {
		t.Fatalf("expected validation failure for inverted timeframe")
	}
}

func TestCheckConvergenceRequiresMinimumSampleSize(t *testing.T) {
	samples := map[string]map[int][]float64{
		"x": {2020: make([]float64, 50)}, // below the 200-sample floor
	}
	if _, converged := checkConvergence(samples, 0.01); converged {
		t.Fatalf("convergence must not be declared below the minimum sample size")
	}
}

func TestCheckConvergenceDetectsStableMeans(t *testing.T) {
	vec := make([]float64, 400)
	for i := range vec {
		vec[i] = 10 // perfectly stable: both halves have identical means
	}
	samples := map[string]map[int][]float64{"x": {2020: vec}}
	metric, converged := checkConvergence(samples, 0.01)
	if !converged {
		t.Fatalf("expected convergence for a constant sample vector, metric=%v", metric)
	}
}

func TestSummarizePercentilesAndMedian(t *testing.T) {
	vec := []float64{5, 3, 1, 4, 2} // sorted: 1 2 3 4 5
	s := summarize(vec, []float64{50})
	if s.Median != 3 {
		t.Fatalf("median = %v, want 3", s.Median)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Fatalf("min/max = %v/%v, want 1/5", s.Min, s.Max)
	}
	if s.Percentiles[50] != 3 {
		t.Fatalf("p50 = %v, want 3", s.Percentiles[50])
	}
}
