package parser

import (
	"testing"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
)

const sampleScenario = `scenario "Test" {
  timeframe: 2025 -> 2027

  assumption base_rate {
    value: 2
    source: "survey"
  }

  variable output {
    growth: linear(intercept=10, slope=1)
    uncertainty: normal(±5%)
  }

  impact total {
    derives_from: [output]
  }

  simulate {
    runs: 200
    seed: 7
  }
}
`

func TestParseScenarioProducesExpectedDeclarations(t *testing.T) {
	scenario, diags := Parse(sampleScenario)
	if scenario == nil {
		t.Fatalf("parse returned nil scenario, diags: %v", diags)
	}
	if scenario.Name != "Test" {
		t.Fatalf("expected scenario name %q, got %q", "Test", scenario.Name)
	}

	wantKinds := []ast.DeclKind{ast.DeclAssumption, ast.DeclVariable, ast.DeclImpact, ast.DeclSimulate}
	if len(scenario.Declarations) != len(wantKinds) {
		t.Fatalf("expected %d declarations, got %d", len(wantKinds), len(scenario.Declarations))
	}
	for i, want := range wantKinds {
		if scenario.Declarations[i].Kind != want {
			t.Fatalf("declaration %d: expected kind %d, got %d", i, want, scenario.Declarations[i].Kind)
		}
	}

	if scenario.Metadata.Timeframe == nil {
		t.Fatalf("expected a parsed timeframe")
	}
	if scenario.Metadata.Timeframe.Start.Year != 2025 || scenario.Metadata.Timeframe.End.Year != 2027 {
		t.Fatalf("unexpected timeframe: %+v", scenario.Metadata.Timeframe)
	}
}

func TestParseVariableGrowthAndUncertainty(t *testing.T) {
	scenario, diags := Parse(sampleScenario)
	if scenario == nil {
		t.Fatalf("parse failed: %v", diags)
	}
	var v *ast.Variable
	for _, d := range scenario.Declarations {
		if d.Kind == ast.DeclVariable {
			v = d.Variable
		}
	}
	if v == nil {
		t.Fatalf("expected a variable declaration")
	}
	if v.Growth == nil {
		t.Fatalf("expected a growth model")
	}
	if v.Uncertainty == nil {
		t.Fatalf("expected an uncertainty distribution")
	}
}

func TestParseImpactProducesDerivesFrom(t *testing.T) {
	scenario, diags := Parse(sampleScenario)
	if scenario == nil {
		t.Fatalf("parse failed: %v", diags)
	}
	var imp *ast.Impact
	for _, d := range scenario.Declarations {
		if d.Kind == ast.DeclImpact {
			imp = d.Impact
		}
	}
	if imp == nil {
		t.Fatalf("expected an impact declaration")
	}
	if len(imp.DerivesFrom) != 1 || imp.DerivesFrom[0] != "output" {
		t.Fatalf("expected derives_from [output], got %v", imp.DerivesFrom)
	}
}

func TestParseSimulateBlockFields(t *testing.T) {
	scenario, diags := Parse(sampleScenario)
	if scenario == nil {
		t.Fatalf("parse failed: %v", diags)
	}
	var sim *ast.Simulate
	for _, d := range scenario.Declarations {
		if d.Kind == ast.DeclSimulate {
			sim = d.Simulate
		}
	}
	if sim == nil {
		t.Fatalf("expected a simulate declaration")
	}
	if sim.Runs == nil || *sim.Runs != 200 {
		t.Fatalf("expected runs=200, got %v", sim.Runs)
	}
	if sim.Seed == nil || *sim.Seed != 7 {
		t.Fatalf("expected seed=7, got %v", sim.Seed)
	}
}

func TestParseRecoversFromMalformedExpressionWithoutPanicking(t *testing.T) {
	// An unrecoverable expression failure aborts only the current
	// declaration (spec.md §4.2's abortDecl unwind) rather than panicking
	// out of Parse entirely; the caller always gets a diagnostic back.
	source := `scenario "Broken" {
  assumption bad {
    value: )(
  }
}
`
	scenario, diags := Parse(source)
	if scenario == nil {
		t.Fatalf("expected a non-nil scenario even with a malformed declaration, diags: %v", diags)
	}
	if len(diags) == 0 {
		t.Fatalf("expected at least one diagnostic for the malformed declaration")
	}
	var sawSyntaxError bool
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			sawSyntaxError = true
		}
	}
	if !sawSyntaxError {
		t.Fatalf("expected at least one error-severity diagnostic, got: %v", diags)
	}
}
