package main

import (
	"testing"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/pkg/sdl"
)

func TestHasErrorDiagnostic(t *testing.T) {
	warnOnly := []diag.Diagnostic{{Severity: diag.SeverityWarning, Message: "w"}}
	if hasErrorDiagnostic(warnOnly) {
		t.Fatalf("expected false for warning-only diagnostics")
	}

	withError := []diag.Diagnostic{
		{Severity: diag.SeverityWarning, Message: "w"},
		{Severity: diag.SeverityError, Message: "e"},
	}
	if !hasErrorDiagnostic(withError) {
		t.Fatalf("expected true when an error diagnostic is present")
	}
}

func TestFilterNamesNoExprReturnsAllSorted(t *testing.T) {
	scenario, diags := sdl.Parse(`scenario "t" {
  timeframe: 2025 -> 2026
  variable b { 2025: 1 }
  variable a { 2025: 2 }
}
`)
	if scenario == nil {
		t.Fatalf("parse failed: %v", diags)
	}
	result, simDiags, err := sdl.Simulate(scenario, &sdl.SimulateConfig{})
	if err != nil {
		t.Fatalf("simulate failed: %v (%v)", err, simDiags)
	}

	names, err := filterNames(result, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d: %v", len(names), names)
	}
	if names[0] != "a" || names[1] != "b" {
		t.Fatalf("expected sorted [a b], got %v", names)
	}
}

func TestFilterNamesWithExprExpression(t *testing.T) {
	scenario, diags := sdl.Parse(`scenario "t" {
  timeframe: 2025 -> 2026
  variable revenue_base { 2025: 1 }
  variable cost_base { 2025: 2 }
}
`)
	if scenario == nil {
		t.Fatalf("parse failed: %v", diags)
	}
	result, simDiags, err := sdl.Simulate(scenario, &sdl.SimulateConfig{})
	if err != nil {
		t.Fatalf("simulate failed: %v (%v)", err, simDiags)
	}

	names, err := filterNames(result, `name startsWith "revenue"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 1 || names[0] != "revenue_base" {
		t.Fatalf("expected [revenue_base], got %v", names)
	}
}

func TestFilterNamesRejectsBadExpression(t *testing.T) {
	scenario, diags := sdl.Parse(`scenario "t" { assumption a { value: 1 } }`)
	if scenario == nil {
		t.Fatalf("parse failed: %v", diags)
	}
	result, simDiags, err := sdl.Simulate(scenario, &sdl.SimulateConfig{})
	if err != nil {
		t.Fatalf("simulate failed: %v (%v)", err, simDiags)
	}

	if _, err := filterNames(result, "this is not ) valid ("); err == nil {
		t.Fatalf("expected a compile error for a malformed --filter expression")
	}
}
