package validate

import (
	"sort"
	"testing"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/parser"
)

func TestValidateReportsCyclicDependency(t *testing.T) {
	// spec.md §8 end-to-end scenario #2.
	scenario, diags := parser.Parse(`scenario "Cycle" {
  variable A {
    growth: linear(intercept=1, slope=0)
    depends_on: B
  }
  variable B {
    growth: linear(intercept=1, slope=0)
    depends_on: A
  }
}
`)
	if scenario == nil {
		t.Fatalf("parse failed: %v", diags)
	}

	result := Validate(scenario)
	if result.Valid {
		t.Fatalf("expected an invalid scenario, got diagnostics: %v", result.Diagnostics)
	}

	var found *diag.Diagnostic
	for i := range result.Diagnostics {
		if result.Diagnostics[i].Code == diag.CodeCyclicDependency {
			found = &result.Diagnostics[i]
		}
	}
	if found == nil {
		t.Fatalf("expected an SDL-E004 diagnostic, got: %v", result.Diagnostics)
	}
	if !contains(found.Message, "A") || !contains(found.Message, "B") {
		t.Fatalf("expected the cycle diagnostic to name both A and B, got: %q", found.Message)
	}
}

func TestValidateTopologicalOrderIsPermutationOfNodes(t *testing.T) {
	scenario, diags := parser.Parse(`scenario "Acyclic" {
  assumption base { value: 1 }
  variable output {
    growth: linear(intercept=10, slope=1)
    depends_on: base
  }
  impact total {
    derives_from: [output]
  }
}
`)
	if scenario == nil {
		t.Fatalf("parse failed: %v", diags)
	}

	result := Validate(scenario)
	if !result.Valid {
		t.Fatalf("expected a valid scenario, got diagnostics: %v", result.Diagnostics)
	}
	if result.Graph.Order == nil {
		t.Fatalf("expected a non-nil topological order for an acyclic graph")
	}

	gotNames := append([]string{}, result.Graph.Order...)
	wantNames := make([]string, len(result.Graph.Nodes))
	for i, n := range result.Graph.Nodes {
		wantNames[i] = n.Name
	}
	sort.Strings(gotNames)
	sort.Strings(wantNames)
	if len(gotNames) != len(wantNames) {
		t.Fatalf("expected topo order to be a permutation of the node set: order=%v nodes=%v",
			result.Graph.Order, wantNames)
	}
	for i := range gotNames {
		if gotNames[i] != wantNames[i] {
			t.Fatalf("expected topo order to be a permutation of the node set: order=%v nodes=%v",
				result.Graph.Order, wantNames)
		}
	}
}

func TestValidateRejectsDuplicateNames(t *testing.T) {
	scenario, diags := parser.Parse(`scenario "Dup" {
  assumption x { value: 1 }
  assumption x { value: 2 }
}
`)
	if scenario == nil {
		t.Fatalf("parse failed: %v", diags)
	}

	result := Validate(scenario)
	if result.Valid {
		t.Fatalf("expected a duplicate declaration name to invalidate the scenario")
	}

	var found bool
	for _, d := range result.Diagnostics {
		if d.Code == diag.CodeDuplicateName {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an SDL-E006 diagnostic, got: %v", result.Diagnostics)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
