package eval

import (
	"math"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
)

// evalCall dispatches a function-call expression against the fixed
// built-in table of spec.md §4.4.4; an unrecognised name returns 0.
func evalCall(e ast.Expr, state State, year int) float64 {
	args := evalArgs(e.Args, state, year)
	switch e.Callee {
	case "min":
		return extremum(args, false)
	case "max":
		return extremum(args, true)
	case "abs":
		return arg(args, 0, math.Abs)
	case "sqrt":
		return arg(args, 0, math.Sqrt)
	case "log":
		return arg(args, 0, math.Log)
	case "pow":
		if len(args) < 2 {
			return 0
		}
		return math.Pow(args[0], args[1])
	case "round":
		if len(args) < 2 {
			return 0
		}
		return round(args[0], args[1])
	case "clamp":
		if len(args) < 3 {
			return 0
		}
		return clamp(args[0], args[1], args[2])
	case "lerp":
		if len(args) < 3 {
			return 0
		}
		return args[0] + (args[1]-args[0])*args[2]
	case "sum":
		var s float64
		for _, a := range args {
			s += a
		}
		return s
	case "avg":
		if len(args) == 0 {
			return 0
		}
		var s float64
		for _, a := range args {
			s += a
		}
		return s / float64(len(args))
	default:
		return 0
	}
}

func arg(args []float64, i int, f func(float64) float64) float64 {
	if i >= len(args) {
		return 0
	}
	return f(args[i])
}

func extremum(args []float64, wantMax bool) float64 {
	if len(args) == 0 {
		return 0
	}
	best := args[0]
	for _, a := range args[1:] {
		if (wantMax && a > best) || (!wantMax && a < best) {
			best = a
		}
	}
	return best
}

// round truncates to decimals places with half-away-from-zero rounding
// at ×10^decimals (spec.md §4.4.4).
func round(x, decimals float64) float64 {
	mult := math.Pow(10, decimals)
	v := x * mult
	if v >= 0 {
		v = math.Floor(v + 0.5)
	} else {
		v = math.Ceil(v - 0.5)
	}
	return v / mult
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
