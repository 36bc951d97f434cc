// Package parser implements SDL's recursive-descent, Pratt-style parser
// (spec.md §4.2): token stream → typed AST, recovering on error to collect
// diagnostics rather than aborting the whole parse.
package parser

import (
	"strconv"
	"strings"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/lexer"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/token"
)

// abortDecl is panicked by expression parsing on an unrecoverable failure;
// it unwinds to the nearest declaration boundary, per spec.md §4.2's
// "single unrecoverable failure aborts only the current declaration".
type abortDecl struct{}

// Parser consumes a token stream and produces a Scenario AST.
type Parser struct {
	toks []token.Token
	pos  int
	diag diag.Bag
}

// New creates a Parser over an already-lexed token stream.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse runs the lexer then the parser over source, concatenating
// diagnostics from both stages (spec.md §6.1 `parse`).
func Parse(source string) (*ast.Scenario, []diag.Diagnostic) {
	toks, lexDiags := lexer.Tokenize(source)
	p := New(toks)
	scenario, parseDiags := p.ParseScenario()
	all := append(append([]diag.Diagnostic{}, lexDiags...), parseDiags...)
	return scenario, all
}

// ParseScenario parses the token stream into a Scenario (or nil if the
// `scenario` block itself could not be found), plus diagnostics.
func (p *Parser) ParseScenario() (*ast.Scenario, []diag.Diagnostic) {
	scenario := p.parseTopLevel()
	return scenario, p.diag.Items()
}

// --- token stream helpers ---

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

func (p *Parser) atEnd() bool {
	return p.cur().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of kind k, recording a diagnostic and returning
// ok=false (without consuming) if the current token doesn't match.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	tok := p.cur()
	p.diag.Errorf(diag.CodeSyntax, tok.Span, "expected %s, found %q", k, tok.Lexeme)
	return tok, false
}

// abort records a diagnostic at the current token and unwinds to the
// enclosing declaration boundary.
func (p *Parser) abort(format string, args ...any) {
	p.diag.Errorf(diag.CodeSyntax, p.cur().Span, format, args...)
	panic(abortDecl{})
}

// identLike accepts a plain IDENT, or a keyword token whose lexeme may
// also serve as a free identifier (spec.md §4.2 "Identifier flexibility").
func (p *Parser) identLike() (string, bool) {
	t := p.cur()
	if t.Kind == token.IDENT || token.IdentLexeme(t.Kind) {
		p.advance()
		return t.Lexeme, true
	}
	return "", false
}

func (p *Parser) expectIdentLike() (string, bool) {
	name, ok := p.identLike()
	if !ok {
		t := p.cur()
		p.diag.Errorf(diag.CodeSyntax, t.Span, "expected identifier, found %q", t.Lexeme)
	}
	return name, ok
}

// --- top level ---

func (p *Parser) parseTopLevel() *ast.Scenario {
	start := p.cur().Span.Start
	var imports []ast.Declaration

	for p.check(token.IMPORT) {
		imp, ok := p.parseImportSafely()
		if ok {
			imports = append(imports, imp)
		}
	}

	if !p.check(token.SCENARIO) {
		p.diag.Errorf(diag.CodeSyntax, p.cur().Span, "expected 'scenario' declaration")
		return nil
	}
	p.advance()

	nameTok, ok := p.expect(token.STRING)
	name := nameTok.Lexeme
	_ = ok

	if _, ok := p.expect(token.LBRACE); !ok {
		return &ast.Scenario{Name: name, Declarations: imports, Span: diag.Span{Start: start, End: p.cur().Span.End}}
	}

	scenario := &ast.Scenario{Name: name}
	scenario.Declarations = append(scenario.Declarations, imports...)

	for !p.check(token.RBRACE) && !p.atEnd() {
		if p.tryParseMetadataField(&scenario.Metadata) {
			continue
		}
		if kind := p.declarationKindAt(); kind != 0 {
			if decl, ok := p.parseDeclarationSafely(kind); ok {
				scenario.Declarations = append(scenario.Declarations, decl)
			}
			// Whether or not the declaration aborted mid-parse, position
			// has advanced; just keep looping.
			continue
		}
		// Genuinely unrecognised token: skip one to stay productive.
		t := p.cur()
		p.diag.Errorf(diag.CodeSyntax, t.Span, "unexpected token %q in scenario body", t.Lexeme)
		p.advance()
	}
	p.expect(token.RBRACE)

	scenario.Span = diag.Span{Start: start, End: p.cur().Span.End}
	return scenario
}

func (p *Parser) parseImportSafely() (decl ast.Declaration, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isAbort := r.(abortDecl); isAbort {
				ok = false
				return
			}
			panic(r)
		}
	}()
	decl = p.parseImport()
	ok = true
	return
}

// declarationKindAt is a private marker used only to decide, inside the body loop,
// whether the current token started a recognised declaration (and thus a
// parse attempt was made and aborted) versus being wholly unrecognised.
func (p *Parser) declarationKindAt() token.Kind {
	switch p.cur().Kind {
	case token.VARIABLE, token.ASSUMPTION, token.PARAMETER, token.BRANCH,
		token.IMPACT, token.SIMULATE, token.WATCH, token.CALIBRATE:
		return p.cur().Kind
	default:
		return 0
	}
}

// parseDeclarationSafely dispatches on kind (as determined by
// declarationKindAt) to the matching declaration parser, recovering from
// an abortDecl panic so a single malformed declaration never stops the
// rest of the scenario from parsing (spec.md §4.2 error policy).
func (p *Parser) parseDeclarationSafely(kind token.Kind) (decl ast.Declaration, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isAbort := r.(abortDecl); isAbort {
				ok = false
				return
			}
			panic(r)
		}
	}()
	switch kind {
	case token.VARIABLE:
		decl = p.parseVariable()
	case token.ASSUMPTION:
		decl = p.parseAssumption()
	case token.PARAMETER:
		decl = p.parseParameter()
	case token.BRANCH:
		decl = p.parseBranch()
	case token.IMPACT:
		decl = p.parseImpact()
	case token.SIMULATE:
		decl = p.parseSimulate()
	case token.WATCH:
		decl = p.parseWatch()
	case token.CALIBRATE:
		decl = p.parseCalibrate()
	}
	ok = true
	return
}

func (p *Parser) parseImport() ast.Declaration {
	start := p.cur().Span.Start
	p.advance() // import
	pathTok, _ := p.expect(token.STRING)
	p.expect(token.AS)
	alias, _ := p.expectIdentLike()
	return ast.Declaration{
		Kind: ast.DeclImport,
		Import: &ast.Import{
			Path: pathTok.Lexeme, Alias: alias,
			Span: diag.Span{Start: start, End: p.cur().Span.End},
		},
		Span: diag.Span{Start: start, End: p.cur().Span.End},
	}
}

// --- shared helpers used by declaration + expression parsing ---

func (p *Parser) skipBalancedBlock() {
	depth := 1
	for depth > 0 && !p.atEnd() {
		switch p.cur().Kind {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
		}
		p.advance()
	}
}

// parseDotted parses `ident(.ident)*` into its full dotted string.
func (p *Parser) parseDotted() (string, bool) {
	first, ok := p.identLike()
	if !ok {
		return "", false
	}
	var b strings.Builder
	b.WriteString(first)
	for p.check(token.DOT) {
		p.advance()
		seg, ok := p.expectIdentLike()
		if !ok {
			break
		}
		b.WriteByte('.')
		b.WriteString(seg)
	}
	return b.String(), true
}

// parseNameList parses either a single dotted name or a bracketed,
// comma-separated list of them (used for depends_on / derives_from).
func (p *Parser) parseNameList() []string {
	if p.check(token.LBRACKET) {
		p.advance()
		var names []string
		for !p.check(token.RBRACKET) && !p.atEnd() {
			if name, ok := p.parseDotted(); ok {
				names = append(names, name)
			} else {
				p.advance()
			}
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RBRACKET)
		return names
	}
	if name, ok := p.parseDotted(); ok {
		return []string{name}
	}
	return nil
}

func (p *Parser) parseStringList() []string {
	p.expect(token.LBRACKET)
	var out []string
	for !p.check(token.RBRACKET) && !p.atEnd() {
		if p.check(token.STRING) {
			out = append(out, p.advance().Lexeme)
		} else if name, ok := p.identLike(); ok {
			out = append(out, name)
		} else {
			p.advance()
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACKET)
	return out
}

func (p *Parser) parseNumberList() []float64 {
	p.expect(token.LBRACKET)
	var out []float64
	for !p.check(token.RBRACKET) && !p.atEnd() {
		e := p.parseExpr()
		out = append(out, constFold(e))
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACKET)
	return out
}

// stringOrIdent accepts a STRING literal or a bare identifier-like token,
// for presentation fields that are written unquoted in most scenarios.
func (p *Parser) stringOrIdent() string {
	if p.check(token.STRING) {
		return p.advance().Lexeme
	}
	if name, ok := p.identLike(); ok {
		return name
	}
	return ""
}

func (p *Parser) parseDateLiteral() ast.Date {
	t := p.cur()
	switch t.Kind {
	case token.DATE:
		p.advance()
		return dateFromLexeme(t.Lexeme)
	case token.NUMBER:
		p.advance()
		y, _ := strconv.Atoi(t.Lexeme)
		return ast.Date{Year: y}
	default:
		p.abort("expected date or year, found %q", t.Lexeme)
		return ast.Date{}
	}
}

func dateFromLexeme(lex string) ast.Date {
	parts := strings.Split(lex, "-")
	d := ast.Date{}
	if len(parts) > 0 {
		d.Year, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		d.Month, _ = strconv.Atoi(parts[1])
		d.HasMonth = true
	}
	if len(parts) > 2 {
		d.Day, _ = strconv.Atoi(parts[2])
		d.HasDay = true
	}
	return d
}

func durationFromLexeme(lex string) ast.Duration {
	if lex == "" {
		return ast.Duration{}
	}
	unit := lex[len(lex)-1]
	amount, _ := strconv.ParseFloat(lex[:len(lex)-1], 64)
	return ast.Duration{Amount: amount, Unit: unit}
}

// constFold evaluates a literal-only expression at parse time (used for
// Simulate's numeric list fields); non-constant expressions fold to 0.
func constFold(e ast.Expr) float64 {
	switch e.Kind {
	case ast.ExprNumber, ast.ExprPercentage, ast.ExprCurrency:
		return e.NumberValue
	case ast.ExprUnary:
		v := constFold(*e.Right)
		if e.UnOp == ast.OpNeg {
			return -v
		}
		return v
	default:
		return 0
	}
}
