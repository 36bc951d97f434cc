package parser

import (
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/ast"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/token"
)

var resolutionNames = map[token.Kind]string{
	token.YEARLY: "yearly", token.MONTHLY: "monthly",
	token.WEEKLY: "weekly", token.DAILY: "daily",
}

// tryParseMetadataField consumes a single scenario-level metadata field
// (spec.md §4.2 "A metadata keyword ... invokes the metadata parser") if
// the current token starts one, returning whether it did.
func (p *Parser) tryParseMetadataField(m *ast.Metadata) bool {
	switch p.cur().Kind {
	case token.TIMEFRAME:
		p.advance()
		p.expect(token.COLON)
		start := p.cur().Span
		s := p.parseDateLiteral()
		p.expect(token.ARROW)
		e := p.parseDateLiteral()
		m.Timeframe = &ast.Timeframe{Start: s, End: e, Span: diag.Span{Start: start.Start, End: p.cur().Span.End}}
		return true

	case token.RESOLUTION:
		p.advance()
		p.expect(token.COLON)
		if name, ok := resolutionNames[p.cur().Kind]; ok {
			p.advance()
			m.Resolution = name
		} else if name, ok := p.identLike(); ok {
			m.Resolution = name
		}
		return true

	case token.CONFIDENCE:
		p.advance()
		p.expect(token.COLON)
		v := constFold(p.parseExpr())
		m.Confidence = &v
		return true

	case token.AUTHOR:
		p.advance()
		p.expect(token.COLON)
		m.Author = p.stringOrIdent()
		return true

	case token.VERSION:
		p.advance()
		p.expect(token.COLON)
		m.Version = p.stringOrIdent()
		return true

	case token.DESCRIPTION:
		p.advance()
		p.expect(token.COLON)
		m.Description = p.stringOrIdent()
		return true

	case token.TAGS:
		p.advance()
		p.expect(token.COLON)
		m.Tags = p.parseStringList()
		return true

	case token.SUBTITLE:
		p.advance()
		p.expect(token.COLON)
		m.Subtitle = p.stringOrIdent()
		return true

	case token.CATEGORY:
		p.advance()
		p.expect(token.COLON)
		m.Category = p.stringOrIdent()
		return true

	case token.ICON:
		p.advance()
		p.expect(token.COLON)
		m.Icon = p.stringOrIdent()
		return true

	case token.COLOR:
		p.advance()
		p.expect(token.COLON)
		m.Color = p.stringOrIdent()
		return true

	case token.DIFFICULTY:
		p.advance()
		p.expect(token.COLON)
		m.Difficulty = p.stringOrIdent()
		return true

	default:
		return false
	}
}
