package sdl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
)

// Print renders scenario back to SDL source text (spec.md §8's "parse then
// print then re-parse yields an equivalent AST" property). Every binary
// sub-expression is fully parenthesized rather than reconstructed at
// minimal precedence — correctness of the round trip matters here, not
// textual minimality.
func Print(scenario *ast.Scenario) string {
	if scenario == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "scenario %q {\n", scenario.Name)
	printMetadata(&b, scenario.Metadata)
	for _, d := range scenario.Declarations {
		printDeclaration(&b, d, 1)
	}
	b.WriteString("}\n")
	return b.String()
}

func indent(n int) string { return strings.Repeat("  ", n) }

func printMetadata(b *strings.Builder, m ast.Metadata) {
	if m.Timeframe != nil {
		fmt.Fprintf(b, "%stimeframe: %s -> %s\n", indent(1), dateString(m.Timeframe.Start), dateString(m.Timeframe.End))
	}
	if m.Resolution != "" {
		fmt.Fprintf(b, "%sresolution: %s\n", indent(1), m.Resolution)
	}
	if m.Confidence != nil {
		fmt.Fprintf(b, "%sconfidence: %s\n", indent(1), trimFloat(*m.Confidence))
	}
	if m.Author != "" {
		fmt.Fprintf(b, "%sauthor: %q\n", indent(1), m.Author)
	}
	if m.Version != "" {
		fmt.Fprintf(b, "%sversion: %q\n", indent(1), m.Version)
	}
	if m.Description != "" {
		fmt.Fprintf(b, "%sdescription: %q\n", indent(1), m.Description)
	}
	if m.Subtitle != "" {
		fmt.Fprintf(b, "%ssubtitle: %q\n", indent(1), m.Subtitle)
	}
	if m.Category != "" {
		fmt.Fprintf(b, "%scategory: %q\n", indent(1), m.Category)
	}
	if m.Icon != "" {
		fmt.Fprintf(b, "%sicon: %q\n", indent(1), m.Icon)
	}
	if m.Color != "" {
		fmt.Fprintf(b, "%scolor: %q\n", indent(1), m.Color)
	}
	if m.Difficulty != "" {
		fmt.Fprintf(b, "%sdifficulty: %q\n", indent(1), m.Difficulty)
	}
	if len(m.Tags) > 0 {
		fmt.Fprintf(b, "%stags: %s\n", indent(1), stringList(m.Tags))
	}
}

func dateString(d ast.Date) string {
	switch {
	case d.HasDay:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	case d.HasMonth:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return strconv.Itoa(d.Year)
	}
}

func stringList(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func printDeclaration(b *strings.Builder, d ast.Declaration, depth int) {
	switch d.Kind {
	case ast.DeclVariable:
		printVariable(b, d.Variable, depth)
	case ast.DeclAssumption:
		printAssumption(b, d.Assumption, depth)
	case ast.DeclParameter:
		printParameter(b, d.Parameter, depth)
	case ast.DeclBranch:
		printBranch(b, d.Branch, depth)
	case ast.DeclImpact:
		printImpact(b, d.Impact, depth)
	case ast.DeclSimulate:
		printSimulate(b, d.Simulate, depth)
	case ast.DeclWatch:
		printWatch(b, d.Watch, depth)
	case ast.DeclCalibrate:
		fmt.Fprintf(b, "%scalibrate %s {\n%s}\n", indent(depth), d.Calibrate.Name, indent(depth))
	case ast.DeclBind:
		fmt.Fprintf(b, "%sbind: %s\n", indent(depth), d.Bind.Target)
	case ast.DeclImport:
		fmt.Fprintf(b, "%simport %q as %s\n", indent(depth), d.Import.Path, d.Import.Alias)
	}
}

func printVariable(b *strings.Builder, v *ast.Variable, depth int) {
	fmt.Fprintf(b, "%svariable %s {\n", indent(depth), v.Name)
	in := indent(depth + 1)
	if v.Description != "" {
		fmt.Fprintf(b, "%sdescription: %q\n", in, v.Description)
	}
	if v.Unit != "" {
		fmt.Fprintf(b, "%sunit: %q\n", in, v.Unit)
	}
	if v.Label != "" {
		fmt.Fprintf(b, "%slabel: %q\n", in, v.Label)
	}
	if v.Icon != "" {
		fmt.Fprintf(b, "%sicon: %q\n", in, v.Icon)
	}
	if v.Color != "" {
		fmt.Fprintf(b, "%scolor: %q\n", in, v.Color)
	}
	if len(v.DependsOn) > 0 {
		fmt.Fprintf(b, "%sdepends_on: %s\n", in, stringList(v.DependsOn))
	}
	if v.Growth != nil {
		fmt.Fprintf(b, "%sgrowth: %s\n", in, exprString(*v.Growth))
	}
	if v.Uncertainty != nil {
		fmt.Fprintf(b, "%suncertainty: %s\n", in, exprString(*v.Uncertainty))
	}
	if v.Interpolation != "" {
		fmt.Fprintf(b, "%sinterpolation: %s\n", in, v.Interpolation)
	}
	for _, a := range v.Anchors {
		fmt.Fprintf(b, "%s%s: %s\n", in, dateString(a.Date), exprString(a.Value))
	}
	fmt.Fprintf(b, "%s}\n", indent(depth))
}

func printAssumption(b *strings.Builder, a *ast.Assumption, depth int) {
	fmt.Fprintf(b, "%sassumption %s {\n", indent(depth), a.Name)
	in := indent(depth + 1)
	fmt.Fprintf(b, "%svalue: %s\n", in, exprString(a.Value))
	if a.By != nil {
		fmt.Fprintf(b, "%sby: %s\n", in, dateString(*a.By))
	}
	if a.Source != "" {
		fmt.Fprintf(b, "%ssource: %q\n", in, a.Source)
	}
	if a.Confidence != nil {
		fmt.Fprintf(b, "%sconfidence: %s\n", in, trimFloat(*a.Confidence))
	}
	if a.Uncertainty != nil {
		fmt.Fprintf(b, "%suncertainty: %s\n", in, exprString(*a.Uncertainty))
	}
	if a.Bind != nil {
		fmt.Fprintf(b, "%sbind: %s\n", in, a.Bind.Target)
	}
	if a.Watch != nil {
		printWatchBody(b, a.Watch, depth+1)
	}
	fmt.Fprintf(b, "%s}\n", indent(depth))
}

func printParameter(b *strings.Builder, p *ast.Parameter, depth int) {
	fmt.Fprintf(b, "%sparameter %s {\n", indent(depth), p.Name)
	in := indent(depth + 1)
	fmt.Fprintf(b, "%svalue: %s\n", in, exprString(p.Value))
	if p.HasRange {
		fmt.Fprintf(b, "%srange: [%s, %s]\n", in, exprString(p.Min), exprString(p.Max))
	}
	if p.Step.Span != (diag.Span{}) {
		fmt.Fprintf(b, "%sstep: %s\n", in, exprString(p.Step))
	}
	if p.Label != "" {
		fmt.Fprintf(b, "%slabel: %q\n", in, p.Label)
	}
	if p.Unit != "" {
		fmt.Fprintf(b, "%sunit: %q\n", in, p.Unit)
	}
	if p.Format != "" {
		fmt.Fprintf(b, "%sformat: %q\n", in, p.Format)
	}
	if p.Control != "" {
		fmt.Fprintf(b, "%scontrol: %q\n", in, p.Control)
	}
	if p.Icon != "" {
		fmt.Fprintf(b, "%sicon: %q\n", in, p.Icon)
	}
	if p.Color != "" {
		fmt.Fprintf(b, "%scolor: %q\n", in, p.Color)
	}
	if p.Source != "" {
		fmt.Fprintf(b, "%ssource: %q\n", in, p.Source)
	}
	if p.Description != "" {
		fmt.Fprintf(b, "%sdescription: %q\n", in, p.Description)
	}
	fmt.Fprintf(b, "%s}\n", indent(depth))
}

func printBranch(b *strings.Builder, br *ast.Branch, depth int) {
	fmt.Fprintf(b, "%sbranch %q when %s {\n", indent(depth), br.Name, exprString(br.Condition))
	in := indent(depth + 1)
	if br.Probability != nil {
		fmt.Fprintf(b, "%sprobability: %s\n", in, trimFloat(*br.Probability))
	}
	if br.Fork != "" {
		fmt.Fprintf(b, "%sfork: %q\n", in, br.Fork)
	}
	for _, d := range br.Declarations {
		printDeclaration(b, d, depth+1)
	}
	fmt.Fprintf(b, "%s}\n", indent(depth))
}

func printImpact(b *strings.Builder, im *ast.Impact, depth int) {
	if im.Name == ast.SentinelListName {
		fmt.Fprintf(b, "%simpact on: %s\n", indent(depth), stringList(im.DerivesFrom))
		return
	}
	fmt.Fprintf(b, "%simpact %s {\n", indent(depth), im.Name)
	in := indent(depth + 1)
	if len(im.DerivesFrom) > 0 {
		fmt.Fprintf(b, "%sderives_from: %s\n", in, stringList(im.DerivesFrom))
	}
	if im.Formula.Span != (diag.Span{}) {
		fmt.Fprintf(b, "%sformula: %s\n", in, exprString(im.Formula))
	}
	if im.Label != "" {
		fmt.Fprintf(b, "%slabel: %q\n", in, im.Label)
	}
	if im.Unit != "" {
		fmt.Fprintf(b, "%sunit: %q\n", in, im.Unit)
	}
	if im.Icon != "" {
		fmt.Fprintf(b, "%sicon: %q\n", in, im.Icon)
	}
	if im.Color != "" {
		fmt.Fprintf(b, "%scolor: %q\n", in, im.Color)
	}
	if im.Description != "" {
		fmt.Fprintf(b, "%sdescription: %q\n", in, im.Description)
	}
	fmt.Fprintf(b, "%s}\n", indent(depth))
}

func printSimulate(b *strings.Builder, s *ast.Simulate, depth int) {
	fmt.Fprintf(b, "%ssimulate {\n", indent(depth))
	in := indent(depth + 1)
	if s.Runs != nil {
		fmt.Fprintf(b, "%sruns: %d\n", in, *s.Runs)
	}
	if s.Method != "" {
		fmt.Fprintf(b, "%smethod: %s\n", in, s.Method)
	}
	if s.Seed != nil {
		fmt.Fprintf(b, "%sseed: %d\n", in, *s.Seed)
	}
	if s.OutputKind != "" {
		fmt.Fprintf(b, "%soutput: %s\n", in, s.OutputKind)
	}
	if len(s.Percentiles) > 0 {
		parts := make([]string, len(s.Percentiles))
		for i, p := range s.Percentiles {
			parts[i] = trimFloat(p)
		}
		fmt.Fprintf(b, "%spercentiles: [%s]\n", in, strings.Join(parts, ", "))
	}
	if s.Convergence != nil {
		fmt.Fprintf(b, "%sconvergence: %s\n", in, trimFloat(*s.Convergence))
	}
	if s.Timeout != nil {
		fmt.Fprintf(b, "%stimeout: %s%c\n", in, trimFloat(s.Timeout.Amount), s.Timeout.Unit)
	}
	fmt.Fprintf(b, "%s}\n", indent(depth))
}

func printWatch(b *strings.Builder, w *ast.Watch, depth int) {
	if w.Target != "" {
		fmt.Fprintf(b, "%swatch %s {\n", indent(depth), w.Target)
	} else {
		fmt.Fprintf(b, "%swatch {\n", indent(depth))
	}
	printWatchInner(b, w, depth+1)
	fmt.Fprintf(b, "%s}\n", indent(depth))
}

func printWatchBody(b *strings.Builder, w *ast.Watch, depth int) {
	printWatch(b, w, depth)
}

func printWatchInner(b *strings.Builder, w *ast.Watch, depth int) {
	in := indent(depth)
	if len(w.Rules) > 0 {
		fmt.Fprintf(b, "%srules: [\n", in)
		ruleIn := indent(depth + 1)
		for _, r := range w.Rules {
			fmt.Fprintf(b, "%s{severity: %s, condition: %s},\n", ruleIn, r.Severity, exprString(r.Condition))
		}
		fmt.Fprintf(b, "%s]\n", in)
	}
	if w.Actions != nil {
		fmt.Fprintf(b, "%sactions: {\n", in)
		actIn := indent(depth + 1)
		fmt.Fprintf(b, "%srecalculate: %t\n", actIn, w.Actions.Recalculate)
		if len(w.Actions.Notify) > 0 {
			fmt.Fprintf(b, "%snotify: %s\n", actIn, stringList(w.Actions.Notify))
		}
		if w.Actions.Suggest != "" {
			fmt.Fprintf(b, "%ssuggest: %q\n", actIn, w.Actions.Suggest)
		}
		fmt.Fprintf(b, "%s}\n", in)
	}
}

// exprString renders e as SDL source. Every binary operand is wrapped in
// parentheses regardless of precedence, trading minimal output for a
// textually unambiguous round trip.
func exprString(e ast.Expr) string {
	switch e.Kind {
	case ast.ExprNumber:
		return trimFloat(e.NumberValue)
	case ast.ExprPercentage:
		return trimFloat(e.NumberValue) + "%"
	case ast.ExprCurrency:
		return trimFloat(e.NumberValue)
	case ast.ExprString:
		return strconv.Quote(e.StringValue)
	case ast.ExprBoolean:
		return strconv.FormatBool(e.BooleanValue)
	case ast.ExprDate:
		return dateString(e.DateValue)
	case ast.ExprDuration:
		return fmt.Sprintf("%s%c", trimFloat(e.DurationValue.Amount), e.DurationValue.Unit)
	case ast.ExprIdent:
		return e.Name
	case ast.ExprQualifiedIdent:
		return e.Name + "." + strings.Join(e.Segments, ".")
	case ast.ExprBinary:
		return fmt.Sprintf("(%s %s %s)", exprString(*e.Left), binOpString(e.BinOp), exprString(*e.Right))
	case ast.ExprUnary:
		return fmt.Sprintf("%s%s", unOpString(e.UnOp), exprString(*e.Right))
	case ast.ExprCall:
		return fmt.Sprintf("%s(%s)", e.Callee, exprListString(e.Args))
	case ast.ExprDistribution:
		return distString(e)
	case ast.ExprModel:
		return modelString(e)
	case ast.ExprRecord:
		return recordString(e)
	case ast.ExprArray:
		return "[" + exprListString(e.Elements) + "]"
	default:
		return ""
	}
}

func exprListString(es []ast.Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = exprString(e)
	}
	return strings.Join(parts, ", ")
}

func binOpString(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpPow:
		return "^"
	case ast.OpMod:
		return "%"
	case ast.OpGt:
		return ">"
	case ast.OpLt:
		return "<"
	case ast.OpGte:
		return ">="
	case ast.OpLte:
		return "<="
	case ast.OpEq:
		return "=="
	case ast.OpNeq:
		return "!="
	case ast.OpAnd:
		return "and"
	case ast.OpOr:
		return "or"
	default:
		return "?"
	}
}

func unOpString(op ast.UnaryOp) string {
	if op == ast.OpNot {
		return "not "
	}
	return "-"
}

func distFamilyName(f ast.DistFamily, custom string) string {
	switch f {
	case ast.DistNormal:
		return "normal"
	case ast.DistUniform:
		return "uniform"
	case ast.DistBeta:
		return "beta"
	case ast.DistTriangular:
		return "triangular"
	case ast.DistLognormal:
		return "lognormal"
	default:
		return custom
	}
}

func modelFamilyName(f ast.ModelFamily) string {
	switch f {
	case ast.ModelLinear:
		return "linear"
	case ast.ModelLogistic:
		return "logistic"
	case ast.ModelExponential:
		return "exponential"
	case ast.ModelSigmoid:
		return "sigmoid"
	case ast.ModelPolynomial:
		return "polynomial"
	default:
		return "linear"
	}
}

func distString(e ast.Expr) string {
	name := distFamilyName(e.DistFamily, e.DistCustomTag)
	parts := make([]string, 0, len(e.PosArgs)+len(e.NamedArgs))
	for _, a := range e.PosArgs {
		parts = append(parts, exprString(a))
	}
	for _, n := range e.NamedArgs {
		parts = append(parts, fmt.Sprintf("%s=%s", n.Name, exprString(n.Value)))
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}

func modelString(e ast.Expr) string {
	parts := make([]string, len(e.ModelArgs))
	for i, n := range e.ModelArgs {
		parts[i] = fmt.Sprintf("%s=%s", n.Name, exprString(n.Value))
	}
	return fmt.Sprintf("%s(%s)", modelFamilyName(e.ModelFamily), strings.Join(parts, ", "))
}

func recordString(e ast.Expr) string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, exprString(f.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
