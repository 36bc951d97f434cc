package eval

import (
	"fmt"
	"math"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
)

// EvalModel evaluates a growth-model expression at year, given the
// scenario's t0 (timeframe.start.year). Missing named parameters default
// to the neutrals in spec.md §4.4.6.
func EvalModel(m ast.Expr, state State, year, t0 int) float64 {
	if m.Kind != ast.ExprModel {
		return 0
	}
	named := evalNamed(m.ModelArgs, state, year)
	dt := float64(year - t0)

	switch m.ModelFamily {
	case ast.ModelLinear:
		intercept := namedDefault(named, "intercept", 0)
		slope := namedDefault(named, "slope", 0)
		return intercept + slope*dt

	case ast.ModelLogistic:
		max := namedDefault(named, "max", 1)
		k := namedDefault(named, "k", 0.1)
		midpoint := namedDefault(named, "midpoint", float64(t0+10))
		return max / (1 + math.Exp(-k*(float64(year)-midpoint)))

	case ast.ModelExponential:
		base := namedDefault(named, "base", 1)
		rate := namedDefault(named, "rate", 0.05)
		return base * math.Exp(rate*dt)

	case ast.ModelSigmoid:
		k := namedDefault(named, "k", 0.1)
		midpoint := namedDefault(named, "midpoint", float64(t0+10))
		return 1 / (1 + math.Exp(-k*(float64(year)-midpoint)))

	case ast.ModelPolynomial:
		var sum float64
		for i := 0; ; i++ {
			c, ok := named[fmt.Sprintf("c%d", i)]
			if !ok {
				break
			}
			sum += c * math.Pow(dt, float64(i))
		}
		return sum

	default:
		return 0
	}
}

func namedDefault(named map[string]float64, name string, def float64) float64 {
	if v, ok := named[name]; ok {
		return v
	}
	return def
}
