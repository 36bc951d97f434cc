package eval

import "github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"

// AnchorPoint is a Variable anchor reduced to its evaluated (year, value)
// pair, ready for interpolation.
type AnchorPoint struct {
	Year  int
	Value float64
}

// EvalAnchors evaluates every anchor's value expression against state, at
// its own declared year.
func EvalAnchors(anchors []ast.Anchor, state State) []AnchorPoint {
	pts := make([]AnchorPoint, len(anchors))
	for i, a := range anchors {
		pts[i] = AnchorPoint{Year: a.Date.Year, Value: Eval(a.Value, state, a.Date.Year)}
	}
	return pts
}

// Interpolate fills the gap between anchor points at year using method
// ("step", "linear", or "spline"; spec.md §4.4.5). A single anchor
// returns its own value at every year, regardless of method.
func Interpolate(pts []AnchorPoint, method string, year int) float64 {
	if len(pts) == 0 {
		return 0
	}
	if len(pts) == 1 {
		return pts[0].Value
	}
	switch method {
	case "step":
		return interpStep(pts, year)
	case "spline":
		return interpSpline(pts, year)
	default:
		return interpLinear(pts, year)
	}
}

func interpStep(pts []AnchorPoint, year int) float64 {
	best := pts[0]
	for _, p := range pts {
		if p.Year <= year {
			best = p
		} else {
			break
		}
	}
	return best.Value
}

func interpLinear(pts []AnchorPoint, year int) float64 {
	n := len(pts)
	if year <= pts[0].Year {
		return pts[0].Value
	}
	if year >= pts[n-1].Year {
		return pts[n-1].Value
	}
	for i := 0; i < n-1; i++ {
		if year >= pts[i].Year && year <= pts[i+1].Year {
			span := float64(pts[i+1].Year - pts[i].Year)
			if span == 0 {
				return pts[i].Value
			}
			t := float64(year-pts[i].Year) / span
			return pts[i].Value + t*(pts[i+1].Value-pts[i].Value)
		}
	}
	return pts[n-1].Value
}

// interpSpline implements Catmull-Rom over four neighbour anchors,
// duplicating the first/last anchor at the boundaries (spec.md §4.4.5).
func interpSpline(pts []AnchorPoint, year int) float64 {
	n := len(pts)
	if year <= pts[0].Year {
		return pts[0].Value
	}
	if year >= pts[n-1].Year {
		return pts[n-1].Value
	}
	for i := 0; i < n-1; i++ {
		if year >= pts[i].Year && year <= pts[i+1].Year {
			p0 := pts[maxInt(i-1, 0)]
			p1 := pts[i]
			p2 := pts[i+1]
			p3 := pts[minInt(i+2, n-1)]
			span := float64(p2.Year - p1.Year)
			if span == 0 {
				return p1.Value
			}
			t := float64(year-p1.Year) / span
			return catmullRom(p0.Value, p1.Value, p2.Value, p3.Value, t)
		}
	}
	return pts[n-1].Value
}

func catmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * ((2 * p1) +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
