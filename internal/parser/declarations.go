package parser

import (
	"github.com/cindergame/cinderc/internal/ast"
	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/token"
)

// parseImport parses the three import-item shapes: `import A.B.*`,
// `import A.B.{X, Y}`, `import A.B.Name`.
func (p *Parser) parseImport() ast.Item {
	start := p.cur.Current().Span
	p.cur.Advance() // consume 'import'
	path := p.parseDottedPath()

	mode := ast.ImportExact
	var names []string
	var name string
	if len(path) > 0 {
		name = path[len(path)-1]
		path = path[:len(path)-1]
	}

	if p.cur.Is(token.Dot) && p.cur.Peek(1).Kind == token.Star {
		p.cur.Advance()
		p.cur.Advance()
		mode = ast.ImportAll
		if name != "" {
			path = append(path, name)
		}
		names = nil
	} else if p.cur.Is(token.Dot) && p.cur.Peek(1).Kind == token.LBrace {
		p.cur.Advance()
		open := p.cur.Current().Span
		p.cur.Advance()
		mode = ast.ImportSelect
		if name != "" {
			path = append(path, name)
		}
		for !p.cur.Is(token.RBrace) && !p.cur.IsEOF() {
			names = append(names, p.expectIdent())
			if !p.cur.Accept(token.Comma) {
				break
			}
		}
		p.expectClose(token.RBrace, open)
	} else if name != "" {
		names = []string{name}
	}

	end := p.cur.Peek(-1).Span
	return ast.NewImport(span.New(p.file, start.Start, end.End), path, mode, names)
}

// parseAggregate parses the shared `class`/`struct` shape: name, optional
// type parameters, optional `extends`, braced item list.
func (p *Parser) parseAggregate(kind ast.AggregateKind) ast.Item {
	start := p.cur.Current().Span
	p.cur.Advance() // consume 'class'/'struct'
	name := p.expectIdent()

	var tps []*ast.TypeParam
	if p.cur.Is(token.Lt) {
		tps = p.parseTypeParams()
	}

	var extends ast.Type
	if p.cur.Accept(token.KwExtends) {
		extends = p.parseType()
	}

	var items []*ast.ItemDecl
	open := p.cur.Current().Span
	if p.cur.Accept(token.LBrace) {
		for !p.cur.Is(token.RBrace) && !p.cur.IsEOF() {
			before := p.cur.Mark()
			if it := p.parseItemDecl(); it != nil {
				items = append(items, it)
			}
			if p.cur.Mark() == before {
				p.errorf(p.cur.Current().Span, ErrUnexpectedToken, "unexpected token %s in %s body", p.cur.Current().Kind, kindName(kind))
				p.cur.Advance()
			}
		}
		p.expectClose(token.RBrace, open)
	}

	end := p.cur.Peek(-1).Span
	return ast.NewAggregate(span.New(p.file, start.Start, end.End), kind, name, tps, extends, items)
}

func kindName(k ast.AggregateKind) string {
	if k == ast.KindStruct {
		return "struct"
	}
	return "class"
}

func (p *Parser) parseTypeParams() []*ast.TypeParam {
	open := p.cur.Current().Span
	p.cur.Advance() // consume '<'
	var tps []*ast.TypeParam
	for !p.cur.Is(token.Gt) && !p.cur.IsEOF() {
		tpStart := p.cur.Current().Span
		variance := ast.Invariant
		switch p.cur.Current().Kind {
		case token.Plus:
			variance = ast.Covariant
			p.cur.Advance()
		case token.Minus:
			variance = ast.Contravariant
			p.cur.Advance()
		}
		name := p.expectIdent()
		var upper ast.Type
		if p.cur.Accept(token.KwExtends) || p.cur.Accept(token.Colon) {
			upper = p.parseType()
		}
		end := p.cur.Peek(-1).Span
		tps = append(tps, ast.NewTypeParam(span.New(p.file, tpStart.Start, end.End), name, variance, upper))
		if !p.cur.Accept(token.Comma) {
			break
		}
	}
	p.expectGt(open)
	return tps
}

// expectGt consumes a '>' closing a type-parameter or type-argument list.
func (p *Parser) expectGt(open span.Span) {
	if p.cur.Accept(token.Gt) {
		return
	}
	p.errorf(open, ErrUnexpectedToken, "missing closing '>' for delimiter opened here")
}

// parseFunction parses `func name<T>(params) -> RetType { body }` or the
// `= expr` inline-body and bodyless (native/importonly) forms.
func (p *Parser) parseFunction() ast.Item {
	start := p.cur.Current().Span
	p.cur.Advance() // consume 'func'
	name := p.expectIdent()

	var tps []*ast.TypeParam
	if p.cur.Is(token.Lt) {
		tps = p.parseTypeParams()
	}

	open := p.cur.Current().Span
	var params []*ast.Param
	if p.cur.Accept(token.LParen) {
		params = p.parseParamList(token.RParen)
		p.expectClose(token.RParen, open)
	}

	var ret ast.Type
	if p.cur.Accept(token.Arrow) {
		ret = p.parseType()
	}

	var body *ast.FunctionBody
	switch {
	case p.cur.Is(token.LBrace):
		blk := p.parseBlock()
		body = ast.NewFunctionBody(blk.Span(), blk, nil)
	case p.cur.Accept(token.Assign):
		exprStart := p.cur.Current().Span
		e := p.parseExpr()
		p.cur.Accept(token.Semi)
		body = ast.NewFunctionBody(span.New(p.file, exprStart.Start, p.cur.Peek(-1).Span.End), nil, e)
	default:
		p.cur.Accept(token.Semi)
	}

	end := p.cur.Peek(-1).Span
	return ast.NewFunction(span.New(p.file, start.Start, end.End), name, tps, params, ret, body)
}

func (p *Parser) parseParamList(end token.Kind) []*ast.Param {
	var params []*ast.Param
	for !p.cur.Is(end) && !p.cur.IsEOF() {
		start := p.cur.Current().Span
		var quals ast.ParamQualifiers
		for {
			switch p.cur.Current().Kind {
			case token.KwQuest:
				quals |= ast.PQOptional
				p.cur.Advance()
				continue
			}
			break
		}
		name := p.expectIdent()
		var typ ast.Type
		if p.cur.Accept(token.Colon) {
			typ = p.parseType()
		}
		finish := p.cur.Peek(-1).Span
		params = append(params, ast.NewParam(span.New(p.file, start.Start, finish.End), name, typ, quals))
		if !p.cur.Accept(token.Comma) {
			break
		}
	}
	return params
}

// parseLet parses a top-level `let name: Type [= expr]` item declaration.
func (p *Parser) parseLet() ast.Item {
	start := p.cur.Current().Span
	p.cur.Advance() // consume 'let'
	name := p.expectIdent()
	var typ ast.Type
	if p.cur.Accept(token.Colon) {
		typ = p.parseType()
	}
	var def ast.Expr
	if p.cur.Accept(token.Assign) {
		def = p.parseExpr()
	}
	p.cur.Accept(token.Semi)
	end := p.cur.Peek(-1).Span
	return ast.NewLet(span.New(p.file, start.Start, end.End), name, typ, def)
}

func (p *Parser) parseEnum() ast.Item {
	start := p.cur.Current().Span
	p.cur.Advance() // consume 'enum'
	name := p.expectIdent()
	open := p.cur.Current().Span
	var variants []*ast.EnumVariant
	if p.cur.Accept(token.LBrace) {
		for !p.cur.Is(token.RBrace) && !p.cur.IsEOF() {
			vStart := p.cur.Current().Span
			vName := p.expectIdent()
			var disc *int64
			if p.cur.Accept(token.Assign) {
				if p.cur.Is(token.INT) || p.cur.Is(token.INT64) {
					v := parseIntLiteral(p.cur.Current().Literal)
					disc = &v
					p.cur.Advance()
				} else {
					p.errorf(p.cur.Current().Span, ErrInvalidSyntax, "expected integer discriminant, got %s", p.cur.Current().Kind)
				}
			}
			vEnd := p.cur.Peek(-1).Span
			variants = append(variants, ast.NewEnumVariant(span.New(p.file, vStart.Start, vEnd.End), vName, disc))
			if !p.cur.Accept(token.Comma) {
				break
			}
		}
		p.expectClose(token.RBrace, open)
	}
	end := p.cur.Peek(-1).Span
	return ast.NewEnum(span.New(p.file, start.Start, end.End), name, variants)
}
