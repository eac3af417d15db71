package parser

import (
	"github.com/cindergame/cinderc/internal/ast"
	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/token"
)

// parsePattern parses a `case let <pattern>:` arm pattern: a bare name, an
// `as Type` cast, an aggregate `{field: pattern, ...}` destructure, a
// `?` nullable wrapper, or an `[a, b, ...]` array destructure with an
// optional leading/trailing spread.
func (p *Parser) parsePattern() ast.Pattern {
	start := p.cur.Current().Span
	var base ast.Pattern

	switch p.cur.Current().Kind {
	case token.LBrack:
		base = p.parseArrayPattern()
	case token.IDENT:
		name := p.cur.Current().Literal
		p.cur.Advance()
		if p.cur.Is(token.LBrace) {
			base = p.parseAggregatePattern(start, name)
		} else {
			end := p.cur.Peek(-1).Span
			base = ast.NewNamePattern(span.New(p.file, start.Start, end.End), name)
		}
	default:
		p.errorf(start, ErrInvalidSyntax, "expected a pattern, got %s", p.cur.Current().Kind)
		return ast.NewNamePattern(start, "")
	}

	for p.cur.Is(token.Question) {
		p.cur.Advance()
		end := p.cur.Peek(-1).Span
		base = ast.NewNullablePattern(span.New(p.file, start.Start, end.End), base)
	}

	if p.cur.Accept(token.KwAs) {
		typ := p.parseType()
		end := p.cur.Peek(-1).Span
		base = ast.NewAsPattern(span.New(p.file, start.Start, end.End), base, typ)
	}

	return base
}

func (p *Parser) parseAggregatePattern(start span.Span, name string) ast.Pattern {
	open := p.cur.Current().Span
	p.cur.Advance() // consume '{'
	var fields []*ast.FieldPattern
	for !p.cur.Is(token.RBrace) && !p.cur.IsEOF() {
		fStart := p.cur.Current().Span
		fname := p.expectIdent()
		var value ast.Pattern
		if p.cur.Accept(token.Colon) {
			value = p.parsePattern()
		}
		fEnd := p.cur.Peek(-1).Span
		fields = append(fields, ast.NewFieldPattern(span.New(p.file, fStart.Start, fEnd.End), fname, value))
		if !p.cur.Accept(token.Comma) {
			break
		}
	}
	p.expectClose(token.RBrace, open)
	end := p.cur.Peek(-1).Span
	return ast.NewAggregatePattern(span.New(p.file, start.Start, end.End), name, fields)
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	start := p.cur.Current().Span
	p.cur.Advance() // consume '['
	spread := ast.SpreadNone
	if p.cur.Accept(token.DotDot) {
		spread = ast.SpreadStart
	}
	var elements []ast.Pattern
	for !p.cur.Is(token.RBrack) && !p.cur.IsEOF() {
		if p.cur.Is(token.DotDot) {
			p.cur.Advance()
			spread = ast.SpreadEnd
			break
		}
		elements = append(elements, p.parsePattern())
		if !p.cur.Accept(token.Comma) {
			break
		}
	}
	p.expectClose(token.RBrack, start)
	end := p.cur.Peek(-1).Span
	return ast.NewArrayPattern(span.New(p.file, start.Start, end.End), spread, elements)
}
