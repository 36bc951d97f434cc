package validate

import "github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"

// foldConst attempts to evaluate e as a compile-time constant, for the
// "when constant-foldable" distribution/range checks in spec.md §4.3 and
// §4.3.1. It folds literals, unary negation, and binary arithmetic of two
// foldable operands; anything else (identifiers, calls, comparisons) is
// reported as not foldable rather than guessed at.
func foldConst(e ast.Expr) (float64, bool) {
	switch e.Kind {
	case ast.ExprNumber, ast.ExprPercentage, ast.ExprCurrency:
		return e.NumberValue, true
	case ast.ExprBoolean:
		if e.BooleanValue {
			return 1, true
		}
		return 0, true
	case ast.ExprUnary:
		v, ok := foldConst(*e.Right)
		if !ok {
			return 0, false
		}
		if e.UnOp == ast.OpNeg {
			return -v, true
		}
		if v == 0 {
			return 1, true
		}
		return 0, true
	case ast.ExprBinary:
		l, lok := foldConst(*e.Left)
		r, rok := foldConst(*e.Right)
		if !lok || !rok {
			return 0, false
		}
		switch e.BinOp {
		case ast.OpAdd:
			return l + r, true
		case ast.OpSub:
			return l - r, true
		case ast.OpMul:
			return l * r, true
		case ast.OpDiv:
			if r == 0 {
				return 0, true
			}
			return l / r, true
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}
