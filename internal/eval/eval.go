// Package eval implements SDL's expression evaluator, growth models, and
// interpolation rules (spec.md §4.4.3–§4.4.6), grounded on the teacher's
// pkg/kernel/eval.Resolve dispatch-table shape adapted from text-template
// evaluation to arithmetic AST evaluation. Every numeric edge case
// (division/modulo by zero, unknown calls) resolves to 0 rather than
// erroring, matching the evaluator's documented contract.
package eval

import (
	"math"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
)

// State is the per-run evaluation context: declaration name -> timestep
// year -> value (spec.md §4.4 "Per-run state").
type State map[string]map[int]float64

// Get returns the value recorded for name at year, or 0 if absent
// (spec.md §4.4.3 "Identifier ... the state value ... or 0 if absent").
func (s State) Get(name string, year int) float64 {
	if byYear, ok := s[name]; ok {
		if v, ok := byYear[year]; ok {
			return v
		}
	}
	return 0
}

// Set records value for name at year.
func (s State) Set(name string, year int, value float64) {
	if s[name] == nil {
		s[name] = make(map[int]float64)
	}
	s[name][year] = value
}

// Eval evaluates e against state at the given target year.
func Eval(e ast.Expr, state State, year int) float64 {
	switch e.Kind {
	case ast.ExprNumber, ast.ExprCurrency:
		return e.NumberValue
	case ast.ExprPercentage:
		return e.NumberValue / 100
	case ast.ExprBoolean:
		return boolF(e.BooleanValue)
	case ast.ExprIdent, ast.ExprQualifiedIdent:
		return state.Get(e.Name, year)
	case ast.ExprBinary:
		return evalBinary(e, state, year)
	case ast.ExprUnary:
		v := Eval(*e.Right, state, year)
		if e.UnOp == ast.OpNeg {
			return -v
		}
		return boolF(v == 0)
	case ast.ExprCall:
		return evalCall(e, state, year)
	default:
		return 0
	}
}

func evalBinary(e ast.Expr, state State, year int) float64 {
	l := Eval(*e.Left, state, year)
	r := Eval(*e.Right, state, year)
	switch e.BinOp {
	case ast.OpAdd:
		return l + r
	case ast.OpSub:
		return l - r
	case ast.OpMul:
		return l * r
	case ast.OpDiv:
		if r == 0 {
			return 0
		}
		return l / r
	case ast.OpMod:
		if r == 0 {
			return 0
		}
		return math.Mod(l, r)
	case ast.OpPow:
		return math.Pow(l, r)
	case ast.OpGt:
		return boolF(l > r)
	case ast.OpLt:
		return boolF(l < r)
	case ast.OpGte:
		return boolF(l >= r)
	case ast.OpLte:
		return boolF(l <= r)
	case ast.OpEq:
		return boolF(l == r)
	case ast.OpNeq:
		return boolF(l != r)
	case ast.OpAnd:
		return boolF(l != 0 && r != 0)
	case ast.OpOr:
		return boolF(l != 0 || r != 0)
	default:
		return 0
	}
}

func boolF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// evalArgs evaluates a slice of positional argument expressions.
func evalArgs(exprs []ast.Expr, state State, year int) []float64 {
	out := make([]float64, len(exprs))
	for i, e := range exprs {
		out[i] = Eval(e, state, year)
	}
	return out
}

// evalNamed evaluates a slice of named-argument expressions into a map.
func evalNamed(named []ast.NamedArg, state State, year int) map[string]float64 {
	m := make(map[string]float64, len(named))
	for _, n := range named {
		m[n.Name] = Eval(n.Value, state, year)
	}
	return m
}

func namedOrPos(pos []float64, named map[string]float64, idx int, name string, def float64) float64 {
	if v, ok := named[name]; ok {
		return v
	}
	if idx < len(pos) {
		return pos[idx]
	}
	return def
}
