package sdl

import (
	"strings"
	"testing"
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

func TestTokenizeProducesTokens(t *testing.T) {
	toks, diags := Tokenize(sampleScenario)
	if len(diags) != 0 {
		t.Fatalf("unexpected lex diagnostics: %v", diags)
	}
	if len(toks) == 0 {
		t.Fatalf("expected at least one token")
	}
}

func TestParseValidateSimulatePipeline(t *testing.T) {
	scenario, diags := Parse(sampleScenario)
	if scenario == nil {
		t.Fatalf("parse returned nil scenario, diags: %v", diags)
	}

	result := Validate(scenario)
	if !result.Valid {
		t.Fatalf("expected scenario to validate, diags: %v", result.Diagnostics)
	}

	out, simDiags, err := Simulate(scenario, nil)
	if err != nil {
		t.Fatalf("simulate failed: %v (diags: %v)", err, simDiags)
	}
	if out.Runs != 200 {
		t.Fatalf("Runs = %d, want 200 (from the scenario's simulate block)", out.Runs)
	}
}

func TestPrintRoundTrips(t *testing.T) {
	scenario, diags := Parse(sampleScenario)
	if scenario == nil {
		t.Fatalf("parse returned nil scenario, diags: %v", diags)
	}

	printed := Print(scenario)
	reparsed, reDiags := Parse(printed)
	if reparsed == nil {
		t.Fatalf("re-parse of printed output failed: %v\nprinted:\n%s", reDiags, printed)
	}
	if reparsed.Name != scenario.Name {
		t.Fatalf("round trip changed scenario name: %q != %q", reparsed.Name, scenario.Name)
	}
	if len(reparsed.Declarations) != len(scenario.Declarations) {
		t.Fatalf("round trip changed declaration count: %d != %d", len(reparsed.Declarations), len(scenario.Declarations))
	}
}

func TestDiagramMermaidAndASCII(t *testing.T) {
	scenario, _ := Parse(sampleScenario)
	mermaid, err := Diagram(scenario, DiagramMermaid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mermaid, "flowchart TD") {
		t.Fatalf("expected a mermaid flowchart, got: %s", mermaid)
	}

	ascii, err := Diagram(scenario, DiagramASCII)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(ascii, "output") {
		t.Fatalf("expected the output variable box in ASCII diagram, got: %s", ascii)
	}
}

func TestLoadSimulateConfigValidatesSchema(t *testing.T) {
	cfg, err := LoadSimulateConfig(strings.NewReader("runs: 500\nmethod: monte_carlo\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Runs == nil || *cfg.Runs != 500 {
		t.Fatalf("expected runs=500, got %+v", cfg)
	}
}

func TestLoadSimulateConfigRejectsBadMethod(t *testing.T) {
	_, err := LoadSimulateConfig(strings.NewReader("method: not_a_real_method\n"))
	if err == nil {
		t.Fatalf("expected schema validation to reject an unknown method")
	}
}
