package parser

import (
	"github.com/cindergame/cinderc/internal/ast"
	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/token"
)

// parseType implements the three-alternative type grammar from §4.1:
// bracketed `[T]`/`[T; N]`, named `Name<T1, ..., Tn>`, and function types
// `(T1, ..., Tn) -> R`.
func (p *Parser) parseType() ast.Type {
	start := p.cur.Current().Span
	switch p.cur.Current().Kind {
	case token.LBrack:
		p.cur.Advance()
		elem := p.parseType()
		if p.cur.Accept(token.Semi) {
			size := 0
			if p.cur.Is(token.INT) {
				size = int(parseIntLiteral(p.cur.Current().Literal))
				p.cur.Advance()
			} else {
				p.errorf(p.cur.Current().Span, ErrInvalidSyntax, "expected array size, got %s", p.cur.Current().Kind)
			}
			p.expectClose(token.RBrack, start)
			end := p.cur.Peek(-1).Span
			return ast.NewStaticArrayType(span.New(p.file, start.Start, end.End), elem, size)
		}
		p.expectClose(token.RBrack, start)
		end := p.cur.Peek(-1).Span
		return ast.NewArrayType(span.New(p.file, start.Start, end.End), elem)

	case token.LParen:
		p.cur.Advance()
		var params []ast.Type
		for !p.cur.Is(token.RParen) && !p.cur.IsEOF() {
			params = append(params, p.parseType())
			if !p.cur.Accept(token.Comma) {
				break
			}
		}
		p.expectClose(token.RParen, start)
		var ret ast.Type
		if p.cur.Accept(token.Arrow) {
			ret = p.parseType()
		} else {
			p.errorf(p.cur.Current().Span, ErrExpectedType, "function type requires a return type after '->'")
		}
		end := p.cur.Peek(-1).Span
		return ast.NewFnType(span.New(p.file, start.Start, end.End), params, ret)

	case token.IDENT:
		name := p.cur.Current().Literal
		p.cur.Advance()
		var args []ast.Type
		if p.cur.Is(token.Lt) {
			open := p.cur.Current().Span
			p.cur.Advance()
			for !p.cur.Is(token.Gt) && !p.cur.IsEOF() {
				args = append(args, p.parseType())
				if !p.cur.Accept(token.Comma) {
					break
				}
			}
			p.expectGt(open)
		}
		end := p.cur.Peek(-1).Span
		return ast.NewNamed(span.New(p.file, start.Start, end.End), name, args)
	}

	p.errorf(start, ErrExpectedType, "expected a type, got %s", p.cur.Current().Kind)
	return ast.NewNamed(start, "", nil)
}
