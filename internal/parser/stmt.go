package parser

import (
	"github.com/cindergame/cinderc/internal/ast"
	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/token"
)

// parseBlock parses a `{ stmt* }` body. On failure to find a balanced
// closing brace it falls back to skipping to the matching delimiter and
// returning a single-Error block spanning the whole region (§4.1).
func (p *Parser) parseBlock() *ast.Block {
	start := p.cur.Current().Span
	if !p.cur.Accept(token.LBrace) {
		p.errorf(start, ErrUnexpectedToken, "expected '{' to start a block, got %s", p.cur.Current().Kind)
		return ast.SingleError(start)
	}

	var stmts []ast.Stmt
	for !p.cur.Is(token.RBrace) && !p.cur.IsEOF() {
		before := p.cur.Mark()
		stmts = append(stmts, p.parseStmt())
		if p.cur.Mark() == before {
			p.cur.Advance()
		}
	}
	if !p.expectClose(token.RBrace, start) {
		end := p.recoverTo(token.LBrace, token.RBrace)
		return ast.SingleError(span.New(p.file, start.Start, end))
	}
	end := p.cur.Peek(-1).Span
	return ast.NewBlock(span.New(p.file, start.Start, end.End), stmts)
}

// recoverTo skips forward honoring nesting of (open, close) until the
// matching close is consumed, or EOF is reached. The opening token is
// assumed already consumed by the caller. Returns the byte offset just past
// the consumed closer (or EOF).
func (p *Parser) recoverTo(open, close_ token.Kind) uint32 {
	depth := 1
	for !p.cur.IsEOF() {
		switch p.cur.Current().Kind {
		case open:
			depth++
		case close_:
			depth--
			if depth == 0 {
				end := p.cur.Current().Span.End
				p.cur.Advance()
				return end
			}
		}
		p.cur.Advance()
	}
	return p.cur.Current().Span.End
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Current().Kind {
	case token.KwLet:
		return p.parseLetStmt()
	case token.KwSwitch:
		return p.parseSwitchStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForInStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwBreak:
		sp := p.cur.Current().Span
		p.cur.Advance()
		p.cur.Accept(token.Semi)
		return ast.NewBreakStmt(sp)
	case token.KwContinue:
		sp := p.cur.Current().Span
		p.cur.Advance()
		p.cur.Accept(token.Semi)
		return ast.NewContinueStmt(sp)
	default:
		start := p.cur.Current().Span
		e := p.parseExpr()
		p.cur.Accept(token.Semi)
		end := p.cur.Peek(-1).Span
		return ast.NewExprStmt(span.New(p.file, start.Start, end.End), e)
	}
}


func (p *Parser) parseLetStmt() ast.Stmt {
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
	return ast.NewLetStmt(span.New(p.file, start.Start, end.End), name, typ, def)
}

func (p *Parser) parseSwitchStmt() ast.Stmt {
	start := p.cur.Current().Span
	p.cur.Advance() // consume 'switch'
	subject := p.parseExpr()
	open := p.cur.Current().Span
	var cases []*ast.SwitchCase
	if p.cur.Accept(token.LBrace) {
		for !p.cur.Is(token.RBrace) && !p.cur.IsEOF() {
			cases = append(cases, p.parseSwitchCase())
		}
		p.expectClose(token.RBrace, open)
	}
	end := p.cur.Peek(-1).Span
	return ast.NewSwitchStmt(span.New(p.file, start.Start, end.End), subject, cases)
}

func (p *Parser) parseSwitchCase() *ast.SwitchCase {
	start := p.cur.Current().Span
	var label ast.Expr
	var pat ast.Pattern
	switch {
	case p.cur.Accept(token.KwDefault):
		// label stays nil
	case p.cur.Current().Kind == token.KwCase && p.cur.Peek(1).Kind == token.KwLet:
		p.cur.Advance()
		p.cur.Advance()
		pat = p.parsePattern()
	default:
		p.cur.Accept(token.KwCase)
		label = p.parseExpr()
	}
	p.expectCaseColon(start)
	var body []ast.Stmt
	for !p.cur.Is(token.KwCase) && !p.cur.Is(token.KwDefault) && !p.cur.Is(token.RBrace) && !p.cur.IsEOF() {
		before := p.cur.Mark()
		body = append(body, p.parseStmt())
		if p.cur.Mark() == before {
			p.cur.Advance()
		}
	}
	end := p.cur.Peek(-1).Span
	return ast.NewSwitchCase(span.New(p.file, start.Start, end.End), label, pat, body)
}

func (p *Parser) expectCaseColon(caseStart span.Span) {
	if !p.cur.Accept(token.Colon) {
		p.errorf(caseStart, ErrUnexpectedToken, "expected ':' after case label")
	}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.cur.Current().Span
	p.cur.Advance() // consume 'if'
	cond := p.parseExpr()
	then := p.parseBlock()
	var els *ast.Block
	if p.cur.Accept(token.KwElse) {
		if p.cur.Is(token.KwIf) {
			elseIfSp := p.cur.Current().Span
			stmt := p.parseIfStmt()
			els = ast.NewBlock(span.New(p.file, elseIfSp.Start, stmt.Span().End), []ast.Stmt{stmt})
		} else {
			els = p.parseBlock()
		}
	}
	end := p.cur.Peek(-1).Span
	return ast.NewIfStmt(span.New(p.file, start.Start, end.End), cond, then, els)
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.cur.Current().Span
	p.cur.Advance() // consume 'while'
	cond := p.parseExpr()
	body := p.parseBlock()
	end := p.cur.Peek(-1).Span
	return ast.NewWhileStmt(span.New(p.file, start.Start, end.End), cond, body)
}

func (p *Parser) parseForInStmt() ast.Stmt {
	start := p.cur.Current().Span
	p.cur.Advance() // consume 'for'
	name := p.expectIdent()
	if !p.cur.Accept(token.KwIn) {
		p.errorf(p.cur.Current().Span, ErrUnexpectedToken, "expected 'in' in for-in loop, got %s", p.cur.Current().Kind)
	}
	iter := p.parseExpr()
	body := p.parseBlock()
	end := p.cur.Peek(-1).Span
	return ast.NewForInStmt(span.New(p.file, start.Start, end.End), name, iter, body)
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.cur.Current().Span
	p.cur.Advance() // consume 'return'
	var value ast.Expr
	if !p.cur.Is(token.Semi) && !p.cur.Is(token.RBrace) && !p.cur.IsEOF() {
		value = p.parseExpr()
	}
	p.cur.Accept(token.Semi)
	end := p.cur.Peek(-1).Span
	return ast.NewReturnStmt(span.New(p.file, start.Start, end.End), value)
}
