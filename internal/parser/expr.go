package parser

import (
	"strconv"
	"strings"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/token"
)

// parseExpr is the entry point of the precedence-climbing expression
// grammar (spec.md §4.2, lowest to highest): or, and, comparison,
// additive, multiplicative, exponent, unary, primary.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.check(token.OR) {
		p.advance()
		right := p.parseAnd()
		left = p.binary(ast.OpOr, left, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseComparison()
	for p.check(token.AND) {
		p.advance()
		right := p.parseComparison()
		left = p.binary(ast.OpAnd, left, right)
	}
	return left
}

var comparisonOps = map[token.Kind]ast.BinaryOp{
	token.GT: ast.OpGt, token.LT: ast.OpLt, token.GTE: ast.OpGte,
	token.LTE: ast.OpLte, token.EQ: ast.OpEq, token.NEQ: ast.OpNeq,
}

// parseComparison is non-associative: at most one comparison operator may
// appear at this precedence level (spec.md §4.2).
func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	if op, ok := comparisonOps[p.cur().Kind]; ok {
		p.advance()
		right := p.parseAdditive()
		left = p.binary(op, left, right)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := ast.OpAdd
		if p.cur().Kind == token.MINUS {
			op = ast.OpSub
		}
		p.advance()
		right := p.parseMultiplicative()
		left = p.binary(op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseExponent()
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.STAR:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		case token.PERCENT:
			op = ast.OpMod
		}
		p.advance()
		right := p.parseExponent()
		left = p.binary(op, left, right)
	}
	return left
}

// parseExponent is right-associative: recurse into itself on the right.
func (p *Parser) parseExponent() ast.Expr {
	left := p.parseUnary()
	if p.check(token.CARET) {
		p.advance()
		right := p.parseExponent()
		left = p.binary(ast.OpPow, left, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.MINUS:
		span := p.cur().Span
		p.advance()
		operand := p.parseUnary()
		return p.unary(ast.OpNeg, operand, span)
	case token.NOT:
		span := p.cur().Span
		p.advance()
		operand := p.parseUnary()
		return p.unary(ast.OpNot, operand, span)
	case token.PLUSMINUS:
		// Leading `±` in unary position is normal(<expr>) shorthand
		// (spec.md §3.2, §4.2).
		span := p.cur().Span
		p.advance()
		operand := p.parseUnary()
		return ast.Expr{
			Kind: ast.ExprDistribution, Span: span,
			DistFamily: ast.DistNormal, PosArgs: []ast.Expr{operand},
		}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) binary(op ast.BinaryOp, l, r ast.Expr) ast.Expr {
	return ast.Expr{
		Kind: ast.ExprBinary, Span: diag.Span{Start: l.Span.Start, End: r.Span.End},
		BinOp: op, Left: &l, Right: &r,
	}
}

func (p *Parser) unary(op ast.UnaryOp, operand ast.Expr, span diag.Span) ast.Expr {
	return ast.Expr{
		Kind: ast.ExprUnary, Span: diag.Span{Start: span.Start, End: operand.Span.End},
		UnOp: op, Right: &operand,
	}
}

var distFamilies = map[token.Kind]ast.DistFamily{
	token.NORMAL: ast.DistNormal, token.UNIFORM: ast.DistUniform,
	token.BETA: ast.DistBeta, token.TRIANGULAR: ast.DistTriangular,
	token.LOGNORMAL: ast.DistLognormal, token.CUSTOM: ast.DistCustom,
}

var modelFamilies = map[token.Kind]ast.ModelFamily{
	token.LINEAR: ast.ModelLinear, token.LOGISTIC: ast.ModelLogistic,
	token.EXPONENTIAL: ast.ModelExponential, token.SIGMOID: ast.ModelSigmoid,
	token.POLYNOMIAL: ast.ModelPolynomial,
}

func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()

	switch t.Kind {
	case token.NUMBER:
		p.advance()
		v, _ := strconv.ParseFloat(t.Lexeme, 64)
		return ast.Expr{Kind: ast.ExprNumber, Span: t.Span, NumberValue: v}

	case token.PERCENTAGE:
		p.advance()
		v, _ := strconv.ParseFloat(strings.TrimSuffix(t.Lexeme, "%"), 64)
		return ast.Expr{Kind: ast.ExprPercentage, Span: t.Span, NumberValue: v}

	case token.CURRENCY:
		p.advance()
		v, code := parseCurrencyLexeme(t.Lexeme)
		return ast.Expr{Kind: ast.ExprCurrency, Span: t.Span, NumberValue: v, StringValue: code}

	case token.STRING:
		p.advance()
		return ast.Expr{Kind: ast.ExprString, Span: t.Span, StringValue: t.Lexeme}

	case token.BOOLEAN:
		p.advance()
		return ast.Expr{Kind: ast.ExprBoolean, Span: t.Span, BooleanValue: t.Lexeme == "true"}

	case token.DATE:
		p.advance()
		return ast.Expr{Kind: ast.ExprDate, Span: t.Span, DateValue: dateFromLexeme(t.Lexeme)}

	case token.DURATION:
		p.advance()
		return ast.Expr{Kind: ast.ExprDuration, Span: t.Span, DurationValue: durationFromLexeme(t.Lexeme)}

	case token.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RPAREN)
		return inner

	case token.LBRACE:
		return p.parseRecordExpr()

	case token.LBRACKET:
		return p.parseArrayExpr()

	case token.IDENT:
		return p.parseIdentOrCallExpr()

	default:
		if fam, ok := distFamilies[t.Kind]; ok && p.peekAt(1).Kind == token.LPAREN {
			return p.parseDistributionExpr(fam, t)
		}
		if fam, ok := modelFamilies[t.Kind]; ok && p.peekAt(1).Kind == token.LPAREN {
			return p.parseModelExpr(fam, t)
		}
		if token.IdentLexeme(t.Kind) {
			return p.parseIdentOrCallExpr()
		}
		p.abort("unexpected token %q in expression", t.Lexeme)
		return ast.Expr{}
	}
}

func (p *Parser) parseIdentOrCallExpr() ast.Expr {
	t := p.cur()
	name, _ := p.identLike()

	if p.check(token.LPAREN) {
		p.advance()
		var args []ast.Expr
		for !p.check(token.RPAREN) && !p.atEnd() {
			args = append(args, p.parseExpr())
			if !p.match(token.COMMA) {
				break
			}
		}
		end, _ := p.expect(token.RPAREN)
		return ast.Expr{Kind: ast.ExprCall, Span: diag.Span{Start: t.Span.Start, End: end.Span.End}, Callee: name, Args: args}
	}

	if p.check(token.DOT) {
		var segments []string
		end := t.Span
		for p.check(token.DOT) {
			p.advance()
			seg, ok := p.expectIdentLike()
			if !ok {
				break
			}
			segments = append(segments, seg)
			end = p.toks[p.pos-1].Span
		}
		return ast.Expr{Kind: ast.ExprQualifiedIdent, Span: diag.Span{Start: t.Span.Start, End: end.End}, Name: name, Segments: segments}
	}

	return ast.Expr{Kind: ast.ExprIdent, Span: t.Span, Name: name}
}

func (p *Parser) parseRecordExpr() ast.Expr {
	start := p.cur().Span
	p.advance() // {
	var fields []ast.RecordField
	for !p.check(token.RBRACE) && !p.atEnd() {
		name, ok := p.expectIdentLike()
		if !ok {
			p.advance()
			continue
		}
		if _, ok := p.expect(token.COLON); !ok {
			continue
		}
		val := p.parseExpr()
		fields = append(fields, ast.RecordField{Name: name, Value: val})
		if !p.match(token.COMMA) {
			break
		}
	}
	end, _ := p.expect(token.RBRACE)
	return ast.Expr{Kind: ast.ExprRecord, Span: diag.Span{Start: start.Start, End: end.Span.End}, Fields: fields}
}

func (p *Parser) parseArrayExpr() ast.Expr {
	start := p.cur().Span
	p.advance() // [
	var elems []ast.Expr
	for !p.check(token.RBRACKET) && !p.atEnd() {
		elems = append(elems, p.parseExpr())
		if !p.match(token.COMMA) {
			break
		}
	}
	end, _ := p.expect(token.RBRACKET)
	return ast.Expr{Kind: ast.ExprArray, Span: diag.Span{Start: start.Start, End: end.Span.End}, Elements: elems}
}

// isNamedArgStart reports whether the parser is sitting at an
// `ident=expr`-shaped argument (spec.md §4.2 distribution/model
// constructor grammar, form (c)).
func (p *Parser) isNamedArgStart() bool {
	t := p.cur()
	if t.Kind != token.IDENT && !token.IdentLexeme(t.Kind) {
		return false
	}
	return p.peekAt(1).Kind == token.ASSIGN
}

func (p *Parser) parseNamedArg() ast.NamedArg {
	name, _ := p.expectIdentLike()
	p.expect(token.ASSIGN)
	val := p.parseExpr()
	return ast.NamedArg{Name: name, Value: val}
}

func (p *Parser) parseDistributionExpr(fam ast.DistFamily, famTok token.Token) ast.Expr {
	p.advance() // family keyword
	p.expect(token.LPAREN)

	var pos []ast.Expr
	var named []ast.NamedArg

	if p.check(token.PLUSMINUS) {
		p.advance()
		pos = append(pos, p.parseExpr())
	} else if p.isNamedArgStart() {
		named = append(named, p.parseNamedArg())
		for p.match(token.COMMA) {
			named = append(named, p.parseNamedArg())
		}
	} else {
		for !p.check(token.RPAREN) && !p.atEnd() {
			pos = append(pos, p.parseExpr())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	end, _ := p.expect(token.RPAREN)

	tag := ""
	if fam == ast.DistCustom {
		tag = famTok.Lexeme
	}
	return ast.Expr{
		Kind: ast.ExprDistribution, Span: diag.Span{Start: famTok.Span.Start, End: end.Span.End},
		DistFamily: fam, DistCustomTag: tag, PosArgs: pos, NamedArgs: named,
	}
}

func (p *Parser) parseModelExpr(fam ast.ModelFamily, famTok token.Token) ast.Expr {
	p.advance() // family keyword
	p.expect(token.LPAREN)

	var named []ast.NamedArg
	for !p.check(token.RPAREN) && !p.atEnd() {
		named = append(named, p.parseNamedArg())
		if !p.match(token.COMMA) {
			break
		}
	}
	end, _ := p.expect(token.RPAREN)

	return ast.Expr{
		Kind: ast.ExprModel, Span: diag.Span{Start: famTok.Span.Start, End: end.Span.End},
		ModelFamily: fam, ModelArgs: named,
	}
}

// parseCurrencyLexeme splits a Currency token's lexeme ("5M EUR",
// "100 USD") into its fully expanded numeric value and the currency
// code, per spec.md §4.4.3 ("Currency literal → value, fully expanded by
// magnitude at parse time").
func parseCurrencyLexeme(lex string) (float64, string) {
	spaceIdx := strings.IndexByte(lex, ' ')
	if spaceIdx < 0 {
		v, _ := strconv.ParseFloat(lex, 64)
		return v, ""
	}
	left := lex[:spaceIdx]
	code := lex[spaceIdx+1:]
	mult := 1.0
	numPart := left
	if len(left) > 0 {
		switch left[len(left)-1] {
		case 'K':
			mult, numPart = 1e3, left[:len(left)-1]
		case 'M':
			mult, numPart = 1e6, left[:len(left)-1]
		case 'B':
			mult, numPart = 1e9, left[:len(left)-1]
		case 'T':
			mult, numPart = 1e12, left[:len(left)-1]
		}
	}
	v, _ := strconv.ParseFloat(numPart, 64)
	return v * mult, code
}
