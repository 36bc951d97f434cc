package eval

import (
	"testing"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
)

func num(v float64) ast.Expr { return ast.Expr{Kind: ast.ExprNumber, NumberValue: v} }

func binary(op ast.BinaryOp, l, r ast.Expr) ast.Expr {
	return ast.Expr{Kind: ast.ExprBinary, BinOp: op, Left: &l, Right: &r}
}

func TestEvalArithmetic(t *testing.T) {
	e := binary(ast.OpAdd, num(2), binary(ast.OpMul, num(3), num(4)))
	if got := Eval(e, State{}, 2025); got != 14 {
		t.Fatalf("2+3*4 = %v, want 14", got)
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	e := binary(ast.OpDiv, num(5), num(0))
	if got := Eval(e, State{}, 2025); got != 0 {
		t.Fatalf("5/0 = %v, want 0", got)
	}
}

func TestEvalModuloByZero(t *testing.T) {
	e := binary(ast.OpMod, num(5), num(0))
	if got := Eval(e, State{}, 2025); got != 0 {
		t.Fatalf("5%%0 = %v, want 0", got)
	}
}

func TestEvalIdentMissingIsZero(t *testing.T) {
	e := ast.Expr{Kind: ast.ExprIdent, Name: "undefined_thing"}
	if got := Eval(e, State{}, 2025); got != 0 {
		t.Fatalf("unknown identifier = %v, want 0", got)
	}
}

func TestEvalCallUnknownFunctionIsZero(t *testing.T) {
	e := ast.Expr{Kind: ast.ExprCall, Callee: "not_a_real_function", Args: []ast.Expr{num(1)}}
	if got := Eval(e, State{}, 2025); got != 0 {
		t.Fatalf("unknown call = %v, want 0", got)
	}
}

func TestEvalBuiltinsMinMaxClamp(t *testing.T) {
	minE := ast.Expr{Kind: ast.ExprCall, Callee: "min", Args: []ast.Expr{num(3), num(1), num(2)}}
	if got := Eval(minE, State{}, 2025); got != 1 {
		t.Fatalf("min(3,1,2) = %v, want 1", got)
	}
	clampE := ast.Expr{Kind: ast.ExprCall, Callee: "clamp", Args: []ast.Expr{num(15), num(0), num(10)}}
	if got := Eval(clampE, State{}, 2025); got != 10 {
		t.Fatalf("clamp(15,0,10) = %v, want 10", got)
	}
}

func TestStateGetSet(t *testing.T) {
	s := make(State)
	s.Set("gdp", 2025, 100)
	if got := s.Get("gdp", 2025); got != 100 {
		t.Fatalf("Get after Set = %v, want 100", got)
	}
	if got := s.Get("gdp", 2026); got != 0 {
		t.Fatalf("Get for unset year = %v, want 0", got)
	}
}

func TestInterpolateLinear(t *testing.T) {
	pts := []AnchorPoint{{Year: 2020, Value: 0}, {Year: 2030, Value: 100}}
	if got := Interpolate(pts, "linear", 2025); got != 50 {
		t.Fatalf("linear midpoint = %v, want 50", got)
	}
}

func TestInterpolateStep(t *testing.T) {
	pts := []AnchorPoint{{Year: 2020, Value: 1}, {Year: 2025, Value: 2}}
	if got := Interpolate(pts, "step", 2024); got != 1 {
		t.Fatalf("step before second anchor = %v, want 1", got)
	}
	if got := Interpolate(pts, "step", 2025); got != 2 {
		t.Fatalf("step at second anchor = %v, want 2", got)
	}
}

func TestInterpolateSingleAnchor(t *testing.T) {
	pts := []AnchorPoint{{Year: 2020, Value: 42}}
	if got := Interpolate(pts, "spline", 2099); got != 42 {
		t.Fatalf("single anchor = %v, want 42", got)
	}
}

func TestEvalModelLinear(t *testing.T) {
	m := ast.Expr{Kind: ast.ExprModel, ModelFamily: ast.ModelLinear, ModelArgs: []ast.NamedArg{
		{Name: "intercept", Value: num(10)},
		{Name: "slope", Value: num(2)},
	}}
	if got := EvalModel(m, State{}, 2030, 2020); got != 30 {
		t.Fatalf("linear(10,2) @ dt=10 = %v, want 30", got)
	}
}

func TestEvalModelExponentialAtT0EqualsBase(t *testing.T) {
	m := ast.Expr{Kind: ast.ExprModel, ModelFamily: ast.ModelExponential}
	if got := EvalModel(m, State{}, 2020, 2020); got != 1 {
		t.Fatalf("exponential with no args @ dt=0 = %v, want base default 1", got)
	}
}
