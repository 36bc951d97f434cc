// Package sdl is SDL's public, stable entry point (spec.md §6.1): the four
// external operations — tokenize, parse, validate, simulate — plus the
// simulate configuration document and deterministic pretty-printer.
// Grounded on the teacher's pkg/schema, which plays the same role over
// gert's internal kernel packages: a thin, documented surface that never
// leaks internal package types' implementation details beyond what
// callers need.
package sdl

import (
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/causal"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/lexer"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/parser"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/sim"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/token"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/validate"
)

// Re-exported types, so callers never need to import internal/ packages
// directly (spec.md §6.4's package boundary).
type (
	Token              = token.Token
	Diagnostic         = diag.Diagnostic
	Scenario           = ast.Scenario
	ValidationResult   = validate.Result
	SimulationResult   = sim.SimulationResult
	ProgressEvent      = sim.ProgressEvent
	CausalGraph        = validate.Graph
	DiagramFormat      = causal.Format
)

const (
	DiagramMermaid = causal.FormatMermaid
	DiagramASCII   = causal.FormatASCII
)

// Tokenize lexes source into a token stream (spec.md §6.1 `tokenize`).
func Tokenize(source string) ([]Token, []Diagnostic) {
	return lexer.Tokenize(source)
}

// Parse lexes and parses source into a Scenario AST (spec.md §6.1 `parse`).
func Parse(source string) (*Scenario, []Diagnostic) {
	return parser.Parse(source)
}

// Validate runs the full validation pipeline over scenario (spec.md §6.1
// `validate`).
func Validate(scenario *Scenario) ValidationResult {
	return validate.Validate(scenario)
}

// Simulate runs the Monte Carlo simulator over scenario (spec.md §6.1
// `simulate`). cfg may be nil, in which case the scenario's own `simulate`
// declaration (if any) and the built-in defaults apply.
func Simulate(scenario *Scenario, cfg *SimulateConfig) (*SimulationResult, []Diagnostic, error) {
	return sim.Simulate(scenario, cfg.toInternal())
}

// Diagram renders scenario's causal dependency graph (spec.md §3.4). It
// re-validates the scenario internally since the graph is a validation
// artifact; pass in an already-computed ValidationResult via DiagramOf to
// avoid validating twice.
func Diagram(scenario *Scenario, format DiagramFormat) (string, error) {
	res := validate.Validate(scenario)
	return causal.Generate(res.Graph, format)
}

// DiagramOf renders an already-computed ValidationResult's causal graph.
func DiagramOf(res ValidationResult, format DiagramFormat) (string, error) {
	return causal.Generate(res.Graph, format)
}
