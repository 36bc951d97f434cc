package parser

import (
	"strconv"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/token"
)

// exprTruthy extracts a boolean from an already-parsed expression,
// treating any non-zero numeric literal as true (the same rule the
// evaluator applies at runtime, spec.md §4.4.3).
func exprTruthy(e ast.Expr) bool {
	if e.Kind == ast.ExprBoolean {
		return e.BooleanValue
	}
	return constFold(e) != 0
}

// --- variable ---

func (p *Parser) parseVariable() ast.Declaration {
	start := p.cur().Span.Start
	p.advance() // 'variable'
	name, _ := p.expectIdentLike()
	p.expect(token.LBRACE)

	v := &ast.Variable{Name: name, Interpolation: "linear"}
	for !p.check(token.RBRACE) && !p.atEnd() {
		switch p.cur().Kind {
		case token.DESCRIPTION:
			p.advance()
			p.expect(token.COLON)
			v.Description = p.stringOrIdent()
		case token.UNIT:
			p.advance()
			p.expect(token.COLON)
			v.Unit = p.stringOrIdent()
		case token.LABEL:
			p.advance()
			p.expect(token.COLON)
			v.Label = p.stringOrIdent()
		case token.ICON:
			p.advance()
			p.expect(token.COLON)
			v.Icon = p.stringOrIdent()
		case token.COLOR:
			p.advance()
			p.expect(token.COLON)
			v.Color = p.stringOrIdent()
		case token.DEPENDS_ON:
			p.advance()
			p.expect(token.COLON)
			v.DependsOn = p.parseNameList()
		case token.GROWTH:
			p.advance()
			p.expect(token.COLON)
			e := p.parseExpr()
			v.Growth = &e
		case token.UNCERTAINTY:
			p.advance()
			p.expect(token.COLON)
			e := p.parseExpr()
			v.Uncertainty = &e
		case token.INTERPOLATION:
			p.advance()
			p.expect(token.COLON)
			if k := p.cur().Kind; k == token.LINEAR || k == token.SPLINE {
				v.Interpolation = p.advance().Lexeme
			} else if name, ok := p.identLike(); ok {
				v.Interpolation = name
			}
		case token.DATE, token.NUMBER:
			anchorStart := p.cur().Span.Start
			d := p.parseDateLiteral()
			p.expect(token.COLON)
			val := p.parseExpr()
			v.Anchors = append(v.Anchors, ast.Anchor{
				Date: d, Value: val,
				Span: diag.Span{Start: anchorStart, End: p.cur().Span.End},
			})
		default:
			t := p.cur()
			p.diag.Errorf(diag.CodeSyntax, t.Span, "unexpected token %q in variable body", t.Lexeme)
			p.advance()
		}
		p.match(token.COMMA)
	}
	p.expect(token.RBRACE)
	v.Span = diag.Span{Start: start, End: p.cur().Span.End}
	return ast.Declaration{Kind: ast.DeclVariable, Variable: v, Span: v.Span}
}

// --- assumption ---

func (p *Parser) parseAssumption() ast.Declaration {
	start := p.cur().Span.Start
	p.advance() // 'assumption'
	name, _ := p.expectIdentLike()
	p.expect(token.LBRACE)

	a := &ast.Assumption{Name: name}
	for !p.check(token.RBRACE) && !p.atEnd() {
		switch p.cur().Kind {
		case token.VALUE:
			p.advance()
			p.expect(token.COLON)
			a.Value = p.parseExpr()
		case token.BY:
			p.advance()
			p.expect(token.COLON)
			d := p.parseDateLiteral()
			a.By = &d
		case token.SOURCE:
			p.advance()
			p.expect(token.COLON)
			a.Source = p.stringOrIdent()
		case token.CONFIDENCE:
			p.advance()
			p.expect(token.COLON)
			v := constFold(p.parseExpr())
			a.Confidence = &v
		case token.UNCERTAINTY:
			p.advance()
			p.expect(token.COLON)
			e := p.parseExpr()
			a.Uncertainty = &e
		case token.BIND:
			a.Bind = p.parseBind()
		case token.WATCH:
			watchStart := p.cur().Span.Start
			p.advance()
			a.Watch = p.parseWatchBody("", watchStart)
		default:
			t := p.cur()
			p.diag.Errorf(diag.CodeSyntax, t.Span, "unexpected token %q in assumption body", t.Lexeme)
			p.advance()
		}
		p.match(token.COMMA)
	}
	p.expect(token.RBRACE)
	a.Span = diag.Span{Start: start, End: p.cur().Span.End}
	return ast.Declaration{Kind: ast.DeclAssumption, Assumption: a, Span: a.Span}
}

// parseBind parses a nested `bind: <dotted>` or `bind { target: <dotted> }`
// clause on an Assumption (spec.md §3.2); "bind" never starts a top-level
// declaration on its own.
func (p *Parser) parseBind() *ast.Bind {
	start := p.cur().Span.Start
	p.advance() // 'bind'
	b := &ast.Bind{}
	switch {
	case p.match(token.COLON):
		target, _ := p.parseDotted()
		b.Target = target
	case p.check(token.LBRACE):
		p.advance()
		for !p.check(token.RBRACE) && !p.atEnd() {
			if p.check(token.TARGET) {
				p.advance()
				p.expect(token.COLON)
				target, _ := p.parseDotted()
				b.Target = target
			} else {
				p.advance()
			}
		}
		p.expect(token.RBRACE)
	}
	b.Span = diag.Span{Start: start, End: p.cur().Span.End}
	return b
}

// --- parameter ---

func (p *Parser) parseParameter() ast.Declaration {
	start := p.cur().Span.Start
	p.advance() // 'parameter'
	name, _ := p.expectIdentLike()
	p.expect(token.LBRACE)

	param := &ast.Parameter{Name: name}
	for !p.check(token.RBRACE) && !p.atEnd() {
		switch p.cur().Kind {
		case token.VALUE:
			p.advance()
			p.expect(token.COLON)
			param.Value = p.parseExpr()
		case token.RANGE:
			p.advance()
			p.expect(token.COLON)
			p.expect(token.LBRACKET)
			param.Min = p.parseExpr()
			p.expect(token.COMMA)
			param.Max = p.parseExpr()
			p.expect(token.RBRACKET)
			param.HasRange = true
		case token.MIN:
			p.advance()
			p.expect(token.COLON)
			param.Min = p.parseExpr()
			param.HasRange = true
		case token.MAX:
			p.advance()
			p.expect(token.COLON)
			param.Max = p.parseExpr()
			param.HasRange = true
		case token.LABEL:
			p.advance()
			p.expect(token.COLON)
			param.Label = p.stringOrIdent()
		case token.UNIT:
			p.advance()
			p.expect(token.COLON)
			param.Unit = p.stringOrIdent()
		case token.STEP:
			p.advance()
			p.expect(token.COLON)
			param.Step = p.parseExpr()
		case token.FORMAT:
			p.advance()
			p.expect(token.COLON)
			param.Format = p.stringOrIdent()
		case token.CONTROL:
			p.advance()
			p.expect(token.COLON)
			param.Control = p.stringOrIdent()
		case token.ICON:
			p.advance()
			p.expect(token.COLON)
			param.Icon = p.stringOrIdent()
		case token.COLOR:
			p.advance()
			p.expect(token.COLON)
			param.Color = p.stringOrIdent()
		case token.SOURCE:
			p.advance()
			p.expect(token.COLON)
			param.Source = p.stringOrIdent()
		case token.DESCRIPTION:
			p.advance()
			p.expect(token.COLON)
			param.Description = p.stringOrIdent()
		default:
			t := p.cur()
			p.diag.Errorf(diag.CodeSyntax, t.Span, "unexpected token %q in parameter body", t.Lexeme)
			p.advance()
		}
		p.match(token.COMMA)
	}
	p.expect(token.RBRACE)
	param.Span = diag.Span{Start: start, End: p.cur().Span.End}
	return ast.Declaration{Kind: ast.DeclParameter, Parameter: param, Span: param.Span}
}

// --- branch ---

func (p *Parser) parseBranch() ast.Declaration {
	start := p.cur().Span.Start
	p.advance() // 'branch'
	nameTok, _ := p.expect(token.STRING)
	p.expect(token.WHEN)
	cond := p.parseExpr()

	b := &ast.Branch{Name: nameTok.Lexeme, Condition: cond}
	p.expect(token.LBRACE)
	for !p.check(token.RBRACE) && !p.atEnd() {
		switch p.cur().Kind {
		case token.PROBABILITY:
			p.advance()
			p.expect(token.COLON)
			v := constFold(p.parseExpr())
			b.Probability = &v
		case token.FORK:
			p.advance()
			p.expect(token.COLON)
			b.Fork = p.stringOrIdent()
		default:
			if kind := p.declarationKindAt(); kind != 0 {
				if decl, ok := p.parseDeclarationSafely(kind); ok {
					b.Declarations = append(b.Declarations, decl)
				}
			} else {
				t := p.cur()
				p.diag.Errorf(diag.CodeSyntax, t.Span, "unexpected token %q in branch body", t.Lexeme)
				p.advance()
			}
		}
		p.match(token.COMMA)
	}
	p.expect(token.RBRACE)
	b.Span = diag.Span{Start: start, End: p.cur().Span.End}
	return ast.Declaration{Kind: ast.DeclBranch, Branch: b, Span: b.Span}
}

// --- impact ---

func (p *Parser) parseImpact() ast.Declaration {
	start := p.cur().Span.Start
	p.advance() // 'impact'

	imp := &ast.Impact{}
	if p.check(token.ON) {
		// Sugared form: `impact on: [a, b, …]` — produces the reserved
		// sentinel name, excluded from the symbol table (spec.md §3.4).
		p.advance()
		p.expect(token.COLON)
		imp.Name = ast.SentinelListName
		imp.DerivesFrom = p.parseNameList()
		if p.check(token.LBRACE) {
			p.advance()
			p.parseImpactProperties(imp)
			p.expect(token.RBRACE)
		}
	} else {
		name, _ := p.expectIdentLike()
		imp.Name = name
		p.expect(token.LBRACE)
		p.parseImpactProperties(imp)
		p.expect(token.RBRACE)
	}

	imp.Span = diag.Span{Start: start, End: p.cur().Span.End}
	return ast.Declaration{Kind: ast.DeclImpact, Impact: imp, Span: imp.Span}
}

func (p *Parser) parseImpactProperties(imp *ast.Impact) {
	for !p.check(token.RBRACE) && !p.atEnd() {
		switch p.cur().Kind {
		case token.DERIVES_FROM:
			p.advance()
			p.expect(token.COLON)
			imp.DerivesFrom = p.parseNameList()
		case token.FORMULA:
			p.advance()
			p.expect(token.COLON)
			imp.Formula = p.parseExpr()
		case token.LABEL:
			p.advance()
			p.expect(token.COLON)
			imp.Label = p.stringOrIdent()
		case token.UNIT:
			p.advance()
			p.expect(token.COLON)
			imp.Unit = p.stringOrIdent()
		case token.ICON:
			p.advance()
			p.expect(token.COLON)
			imp.Icon = p.stringOrIdent()
		case token.COLOR:
			p.advance()
			p.expect(token.COLON)
			imp.Color = p.stringOrIdent()
		case token.DESCRIPTION:
			p.advance()
			p.expect(token.COLON)
			imp.Description = p.stringOrIdent()
		default:
			t := p.cur()
			p.diag.Errorf(diag.CodeSyntax, t.Span, "unexpected token %q in impact body", t.Lexeme)
			p.advance()
		}
		p.match(token.COMMA)
	}
}

// --- simulate ---

var methodNames = map[token.Kind]string{
	token.MONTE_CARLO: "monte_carlo", token.LATIN_HYPERCUBE: "latin_hypercube", token.SOBOL: "sobol",
}

func (p *Parser) parseSimulate() ast.Declaration {
	start := p.cur().Span.Start
	p.advance() // 'simulate'
	p.expect(token.LBRACE)

	s := &ast.Simulate{}
	for !p.check(token.RBRACE) && !p.atEnd() {
		switch p.cur().Kind {
		case token.RUNS:
			p.advance()
			p.expect(token.COLON)
			v := int(constFold(p.parseExpr()))
			s.Runs = &v
		case token.METHOD:
			p.advance()
			p.expect(token.COLON)
			if name, ok := methodNames[p.cur().Kind]; ok {
				p.advance()
				s.Method = name
			} else if name, ok := p.identLike(); ok {
				s.Method = name
			}
		case token.SEED:
			p.advance()
			p.expect(token.COLON)
			t := p.cur()
			v, _ := strconv.ParseInt(t.Lexeme, 10, 64)
			p.advance()
			s.Seed = &v
		case token.OUTPUT:
			p.advance()
			p.expect(token.COLON)
			s.OutputKind = p.stringOrIdent()
		case token.PERCENTILES:
			p.advance()
			p.expect(token.COLON)
			s.Percentiles = p.parseNumberList()
		case token.CONVERGENCE:
			p.advance()
			p.expect(token.COLON)
			v := constFold(p.parseExpr())
			s.Convergence = &v
		case token.TIMEOUT:
			p.advance()
			p.expect(token.COLON)
			t := p.cur()
			if t.Kind == token.DURATION {
				p.advance()
				d := durationFromLexeme(t.Lexeme)
				s.Timeout = &d
			} else {
				p.advance()
			}
		default:
			t := p.cur()
			p.diag.Errorf(diag.CodeSyntax, t.Span, "unexpected token %q in simulate body", t.Lexeme)
			p.advance()
		}
		p.match(token.COMMA)
	}
	p.expect(token.RBRACE)
	s.Span = diag.Span{Start: start, End: p.cur().Span.End}
	return ast.Declaration{Kind: ast.DeclSimulate, Simulate: s, Span: s.Span}
}

// --- watch ---

func (p *Parser) parseWatch() ast.Declaration {
	start := p.cur().Span.Start
	p.advance() // 'watch'

	target := ""
	if !p.check(token.LBRACE) {
		if name, ok := p.parseDotted(); ok {
			target = name
		}
	}
	w := p.parseWatchBody(target, start)
	return ast.Declaration{Kind: ast.DeclWatch, Watch: w, Span: w.Span}
}

// parseWatchBody parses the `{ rules: [...] actions: {...} }` body shared
// by both the top-level `watch` declaration and a Watch nested inside an
// Assumption (spec.md §3.2).
func (p *Parser) parseWatchBody(target string, start diag.Location) *ast.Watch {
	w := &ast.Watch{Target: target}
	p.expect(token.LBRACE)
	for !p.check(token.RBRACE) && !p.atEnd() {
		switch p.cur().Kind {
		case token.RULES:
			p.advance()
			p.expect(token.COLON)
			w.Rules = p.parseWatchRuleList()
		case token.ACTIONS:
			p.advance()
			p.expect(token.COLON)
			w.Actions = p.parseWatchActions()
		default:
			t := p.cur()
			p.diag.Errorf(diag.CodeSyntax, t.Span, "unexpected token %q in watch body", t.Lexeme)
			p.advance()
		}
		p.match(token.COMMA)
	}
	p.expect(token.RBRACE)
	w.Span = diag.Span{Start: start, End: p.cur().Span.End}
	return w
}

func (p *Parser) parseWatchRuleList() []ast.WatchRule {
	var rules []ast.WatchRule
	p.expect(token.LBRACKET)
	for !p.check(token.RBRACKET) && !p.atEnd() {
		ruleStart := p.cur().Span.Start
		p.expect(token.LBRACE)
		var rule ast.WatchRule
		for !p.check(token.RBRACE) && !p.atEnd() {
			switch p.cur().Kind {
			case token.SEVERITY:
				p.advance()
				p.expect(token.COLON)
				name, _ := p.identLike()
				rule.Severity = name
			case token.CONDITION:
				p.advance()
				p.expect(token.COLON)
				rule.Condition = p.parseExpr()
			default:
				p.advance()
			}
			p.match(token.COMMA)
		}
		p.expect(token.RBRACE)
		rule.Span = diag.Span{Start: ruleStart, End: p.cur().Span.End}
		rules = append(rules, rule)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACKET)
	return rules
}

func (p *Parser) parseWatchActions() *ast.WatchActions {
	a := &ast.WatchActions{}
	p.expect(token.LBRACE)
	for !p.check(token.RBRACE) && !p.atEnd() {
		switch p.cur().Kind {
		case token.RECALCULATE:
			p.advance()
			p.expect(token.COLON)
			a.Recalculate = exprTruthy(p.parseExpr())
		case token.NOTIFY:
			p.advance()
			p.expect(token.COLON)
			a.Notify = p.parseStringList()
		case token.SUGGEST:
			p.advance()
			p.expect(token.COLON)
			a.Suggest = p.stringOrIdent()
		default:
			p.advance()
		}
		p.match(token.COMMA)
	}
	p.expect(token.RBRACE)
	return a
}

// --- calibrate ---

// parseCalibrate retains the declaration's name but skips its body
// unread: Calibrate is "parsed and carried through but not interpreted
// by the simulator" (spec.md §3.2).
func (p *Parser) parseCalibrate() ast.Declaration {
	start := p.cur().Span.Start
	p.advance() // 'calibrate'
	name, _ := p.expectIdentLike()
	if p.check(token.LBRACE) {
		p.advance()
		p.skipBalancedBlock()
	}
	c := &ast.Calibrate{Name: name, Span: diag.Span{Start: start, End: p.cur().Span.End}}
	return ast.Declaration{Kind: ast.DeclCalibrate, Calibrate: c, Span: c.Span}
}
