package eval

import (
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/rng"
)

// SampleDistribution draws one value from d's distribution, given the
// current base value it perturbs (spec.md §4.5). Families that the spec
// defines as base-centred (normal's single-parameter shorthand, uniform's
// two-parameter form) scale by base; the rest return an absolute sampled
// value. Unknown or malformed distributions return base unchanged.
func SampleDistribution(d ast.Expr, state State, year int, src *rng.Source, base float64) float64 {
	if d.Kind != ast.ExprDistribution {
		return base
	}
	pos := evalArgs(d.PosArgs, state, year)
	named := evalNamed(d.NamedArgs, state, year)

	switch d.DistFamily {
	case ast.DistNormal:
		if len(pos) == 1 && len(named) == 0 {
			pct := pos[0]
			return src.Normal(base, base*pct/100)
		}
		mean := namedOrPos(pos, named, 0, "mean", base)
		std := namedOrPos(pos, named, 1, "std", 0)
		return src.Normal(mean, std)

	case ast.DistUniform:
		min := namedOrPos(pos, named, 0, "min", 0)
		max := namedOrPos(pos, named, 1, "max", 1)
		return src.Uniform(min*base, max*base)

	case ast.DistBeta:
		alpha := namedOrPos(pos, named, 0, "alpha", 1)
		beta := namedOrPos(pos, named, 1, "beta", 1)
		return src.Beta(alpha, beta)

	case ast.DistTriangular:
		min := namedOrPos(pos, named, 0, "min", 0)
		mode := namedOrPos(pos, named, 1, "mode", 0)
		max := namedOrPos(pos, named, 2, "max", 0)
		return src.Triangular(min, mode, max)

	case ast.DistLognormal:
		mu := namedOrPos(pos, named, 0, "mu", 0)
		sigma := namedOrPos(pos, named, 1, "sigma", 1)
		return src.Lognormal(mu, sigma)

	default: // custom, or anything malformed
		return base
	}
}
