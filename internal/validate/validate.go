// Package validate implements SDL's validation pipeline (spec.md §4.3):
// symbol collection, metadata checks, per-declaration-kind validation,
// causal graph construction, and Kahn's-algorithm topological sort. It
// never short-circuits — every phase runs and contributes diagnostics to
// a single pass, grounded on the teacher's validate.ValidateFile phase
// sequencing.
package validate

import (
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
)

// Result is the outcome of validating a Scenario.
type Result struct {
	Valid       bool
	Diagnostics []diag.Diagnostic
	Graph       *Graph

	// Flat is every declaration in the scenario, including branch-nested
	// ones, in a single ordered slice — reused by internal/sim so the
	// simulator never has to re-walk Branch nesting itself.
	Flat []ast.Declaration
	// Symbols maps declaration name to its declaration, keyed the same way
	// the causal graph's nodes are (sentinel names excluded).
	Symbols map[string]ast.Declaration
}

// symbolTable maps declaration name to the owning declaration, flattened
// across branch nesting (branch-nested declarations still participate in
// the scenario-wide causal graph and name uniqueness check).
type symbolTable map[string]ast.Declaration

// Validate runs the full pipeline over scenario and returns its Result.
func Validate(scenario *ast.Scenario) Result {
	var bag diag.Bag
	if scenario == nil {
		return Result{Valid: false, Graph: newGraph()}
	}

	flat := flattenDeclarations(scenario.Declarations)
	symbols := collectSymbols(flat, &bag)
	validateMetadata(scenario.Metadata, &bag)
	for _, d := range flat {
		validateDeclaration(d, symbols, &bag)
	}

	g := buildGraph(flat)
	g.topoSort()
	if g.Order == nil && len(g.Cycle) > 0 {
		bag.Errorf(diag.CodeCyclicDependency, scenario.Span,
			"cyclic dependency among: %v", g.Cycle)
	}

	items := bag.Items()
	return Result{
		Valid: !diag.HasErrors(items), Diagnostics: items, Graph: g,
		Flat: flat, Symbols: symbols,
	}
}

// flattenDeclarations walks Branch nesting and returns every declaration
// in the scenario (including nested ones) in a single ordered slice.
func flattenDeclarations(decls []ast.Declaration) []ast.Declaration {
	var out []ast.Declaration
	for _, d := range decls {
		out = append(out, d)
		if d.Kind == ast.DeclBranch && d.Branch != nil {
			out = append(out, flattenDeclarations(d.Branch.Declarations)...)
		}
	}
	return out
}

// collectSymbols registers every non-sentinel declaration name, emitting
// SDL-E006 for duplicates (spec.md §4.3 phase 1).
func collectSymbols(flat []ast.Declaration, bag *diag.Bag) symbolTable {
	symbols := make(symbolTable, len(flat))
	for _, d := range flat {
		name := d.Name()
		if name == "" || name == ast.SentinelListName {
			continue
		}
		if _, exists := symbols[name]; exists {
			bag.Errorf(diag.CodeDuplicateName, d.Span, "duplicate declaration name %q", name)
			continue
		}
		symbols[name] = d
	}
	return symbols
}

// validateMetadata implements spec.md §4.3 phase 2.
func validateMetadata(m ast.Metadata, bag *diag.Bag) {
	if m.Timeframe == nil {
		bag.Warnf(diag.CodeMissingMetadata, diag.Span{}, "scenario is missing a timeframe")
	} else {
		if m.Timeframe.Start.Year >= m.Timeframe.End.Year {
			bag.Errorf(diag.CodeTimeOrder, m.Timeframe.Span, "timeframe start year must precede end year")
		}
	}
	if m.Confidence != nil && (*m.Confidence < 0 || *m.Confidence > 1) {
		bag.Errorf(diag.CodeOutOfRange, diag.Span{}, "scenario confidence %v out of range [0,1]", *m.Confidence)
	}
}

// validateDeclaration dispatches phase-3 checks by declaration kind.
func validateDeclaration(d ast.Declaration, symbols symbolTable, bag *diag.Bag) {
	switch d.Kind {
	case ast.DeclVariable:
		validateVariable(d.Variable, symbols, bag)
	case ast.DeclAssumption:
		validateAssumption(d.Assumption, bag)
	case ast.DeclParameter:
		validateParameter(d.Parameter, bag)
	case ast.DeclBranch:
		validateBranch(d.Branch, symbols, bag)
	case ast.DeclImpact:
		validateImpact(d.Impact, symbols, bag)
	case ast.DeclSimulate:
		validateSimulate(d.Simulate, bag)
	}
}

func validateVariable(v *ast.Variable, symbols symbolTable, bag *diag.Bag) {
	for _, dep := range v.DependsOn {
		base := ast.DependencyBase(dep)
		if _, ok := symbols[base]; !ok {
			bag.Errorf(diag.CodeUndefinedSymbol, v.Span, "variable %q depends on undefined symbol %q", v.Name, base)
		}
	}
	if v.Uncertainty == nil {
		bag.Warnf(diag.CodeMissingUncertainty, v.Span, "variable %q has no uncertainty distribution (deterministic)", v.Name)
	} else {
		validateDistributionExpr(*v.Uncertainty, bag)
	}
	for i := 1; i < len(v.Anchors); i++ {
		if v.Anchors[i-1].Date.Compare(v.Anchors[i].Date) >= 0 {
			bag.Errorf(diag.CodeTimeOrder, v.Anchors[i].Span, "variable %q anchors are not strictly increasing by date", v.Name)
		}
	}
	for _, a := range v.Anchors {
		validateReferences(a.Value, symbols, bag, a.Span)
	}
	if v.Growth != nil {
		validateReferences(*v.Growth, symbols, bag, v.Span)
	}
}

func validateAssumption(a *ast.Assumption, bag *diag.Bag) {
	if a.Source == "" {
		bag.Warnf(diag.CodeMissingMetadata, a.Span, "assumption %q has no source", a.Name)
	}
	if a.Confidence != nil && (*a.Confidence < 0 || *a.Confidence > 1) {
		bag.Errorf(diag.CodeOutOfRange, a.Span, "assumption %q confidence %v out of range [0,1]", a.Name, *a.Confidence)
	}
	if a.Uncertainty != nil {
		validateDistributionExpr(*a.Uncertainty, bag)
	}
}

func validateParameter(p *ast.Parameter, bag *diag.Bag) {
	if !p.HasRange {
		return
	}
	min, minOk := foldConst(p.Min)
	max, maxOk := foldConst(p.Max)
	if minOk && maxOk && min >= max {
		bag.Errorf(diag.CodeOutOfRange, p.Span, "parameter %q range [min=%v, max=%v] is inverted or empty", p.Name, min, max)
	}
}

func validateBranch(b *ast.Branch, symbols symbolTable, bag *diag.Bag) {
	if b.Probability != nil && (*b.Probability < 0 || *b.Probability > 1) {
		bag.Errorf(diag.CodeOutOfRange, b.Span, "branch %q probability %v out of range [0,1]", b.Name, *b.Probability)
	}
	validateReferences(b.Condition, symbols, bag, b.Span)
}

func validateImpact(im *ast.Impact, symbols symbolTable, bag *diag.Bag) {
	for _, dep := range im.DerivesFrom {
		base := ast.DependencyBase(dep)
		if _, ok := symbols[base]; !ok {
			bag.Errorf(diag.CodeUndefinedSymbol, im.Span, "impact %q derives from undefined symbol %q", im.Name, base)
		}
	}
	if im.Formula.Span != (diag.Span{}) {
		validateReferences(im.Formula, symbols, bag, im.Span)
	}
}

func validateSimulate(s *ast.Simulate, bag *diag.Bag) {
	if s.Runs != nil && *s.Runs < 1 {
		bag.Errorf(diag.CodeOutOfRange, s.Span, "simulate runs %d must be >= 1", *s.Runs)
	}
	if s.Convergence != nil {
		if *s.Convergence <= 0 || *s.Convergence >= 1 {
			bag.Errorf(diag.CodeOutOfRange, s.Span, "simulate convergence %v must be strictly in (0,1)", *s.Convergence)
		} else if *s.Convergence > 0.1 {
			bag.Warnf(diag.CodeCoarseConvergence, s.Span, "simulate convergence threshold %v is coarse", *s.Convergence)
		}
	}
	for _, pct := range s.Percentiles {
		if pct < 0 || pct > 100 {
			bag.Errorf(diag.CodeOutOfRange, s.Span, "simulate percentile %v out of range [0,100]", pct)
		}
	}
}

// validateReferences implements spec.md §4.3.2's reference traversal:
// Identifier/QualifiedIdentifier nodes are looked up by base name; binary
// and unary expressions recurse on children; calls recurse on arguments;
// everything else is terminal.
func validateReferences(e ast.Expr, symbols symbolTable, bag *diag.Bag, fallbackSpan diag.Span) {
	switch e.Kind {
	case ast.ExprIdent, ast.ExprQualifiedIdent:
		if _, ok := symbols[e.Name]; !ok {
			span := e.Span
			if span == (diag.Span{}) {
				span = fallbackSpan
			}
			bag.Errorf(diag.CodeUndefinedSymbol, span, "undefined symbol %q", e.Name)
		}
	case ast.ExprBinary:
		validateReferences(*e.Left, symbols, bag, fallbackSpan)
		validateReferences(*e.Right, symbols, bag, fallbackSpan)
	case ast.ExprUnary:
		validateReferences(*e.Right, symbols, bag, fallbackSpan)
	case ast.ExprCall:
		for _, arg := range e.Args {
			validateReferences(arg, symbols, bag, fallbackSpan)
		}
	}
}

// validateDistributionExpr implements spec.md §4.3.1's argument checks,
// applied only when the relevant arguments are constant-foldable.
func validateDistributionExpr(e ast.Expr, bag *diag.Bag) {
	if e.Kind != ast.ExprDistribution {
		return
	}
	args := e.PosArgs
	named := namedArgMap(e.NamedArgs)

	switch e.DistFamily {
	case ast.DistBeta:
		alpha, aOk := foldNamedOrPositional(args, named, 0, "alpha")
		beta, bOk := foldNamedOrPositional(args, named, 1, "beta")
		if aOk && alpha <= 0 {
			bag.Errorf(diag.CodeInvalidDistArgs, e.Span, "beta distribution requires alpha > 0")
		}
		if bOk && beta <= 0 {
			bag.Errorf(diag.CodeInvalidDistArgs, e.Span, "beta distribution requires beta > 0")
		}
	case ast.DistUniform:
		min, minOk := foldNamedOrPositional(args, named, 0, "min")
		max, maxOk := foldNamedOrPositional(args, named, 1, "max")
		if minOk && maxOk && min >= max {
			bag.Errorf(diag.CodeInvalidDistArgs, e.Span, "uniform distribution requires min < max")
		}
	case ast.DistTriangular:
		min, minOk := foldNamedOrPositional(args, named, 0, "min")
		mode, modeOk := foldNamedOrPositional(args, named, 1, "mode")
		max, maxOk := foldNamedOrPositional(args, named, 2, "max")
		if minOk && modeOk && maxOk && !(min <= mode && mode <= max) {
			bag.Errorf(diag.CodeInvalidDistArgs, e.Span, "triangular distribution requires min <= mode <= max")
		}
	}
}

func namedArgMap(named []ast.NamedArg) map[string]ast.Expr {
	m := make(map[string]ast.Expr, len(named))
	for _, n := range named {
		m[n.Name] = n.Value
	}
	return m
}

func foldNamedOrPositional(pos []ast.Expr, named map[string]ast.Expr, idx int, name string) (float64, bool) {
	if e, ok := named[name]; ok {
		return foldConst(e)
	}
	if idx < len(pos) {
		return foldConst(pos[idx])
	}
	return 0, false
}

// buildGraph implements spec.md §4.3 phase 4.
func buildGraph(flat []ast.Declaration) *Graph {
	g := newGraph()
	for _, d := range flat {
		switch d.Kind {
		case ast.DeclVariable:
			g.addNode(d.Variable.Name, NodeVariable)
		case ast.DeclAssumption:
			g.addNode(d.Assumption.Name, NodeAssumption)
		case ast.DeclParameter:
			g.addNode(d.Parameter.Name, NodeParameter)
		case ast.DeclImpact:
			if d.Impact.Name != ast.SentinelListName {
				g.addNode(d.Impact.Name, NodeImpact)
			}
		}
	}
	for _, d := range flat {
		switch d.Kind {
		case ast.DeclVariable:
			for _, dep := range d.Variable.DependsOn {
				g.addEdge(ast.DependencyBase(dep), d.Variable.Name)
			}
		case ast.DeclImpact:
			if d.Impact.Name == ast.SentinelListName {
				continue
			}
			for _, dep := range d.Impact.DerivesFrom {
				g.addEdge(ast.DependencyBase(dep), d.Impact.Name)
			}
		}
	}
	return g
}
