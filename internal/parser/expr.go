package parser

import (
	"strconv"
	"strings"

	"github.com/cindergame/cinderc/internal/ast"
	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/token"
)

// parseExpr is the expression grammar's entry point: ternary folding, then
// an optional single right-leaning `= rhs` (no chained assignments; see
// §4.1). Compound-assignment operators (`+=` etc.) are not handled here —
// they are ordinary entries in the precedence-climbed BinOp table.
func (p *Parser) parseExpr() ast.Expr {
	lhs := p.parseTernary()
	if p.cur.Accept(token.Assign) {
		rhs := p.parseTernary()
		return ast.NewAssign(span.New(p.file, lhs.Span().Start, rhs.Span().End), lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseExprList(end token.Kind) []ast.Expr {
	var list []ast.Expr
	for !p.cur.Is(end) && !p.cur.IsEOF() {
		list = append(list, p.parseExpr())
		if !p.cur.Accept(token.Comma) {
			break
		}
	}
	return list
}

// parseTernary recurses into both branches so that an unparenthesized
// ternary in then-position ("a ? b ? c : d : e") associates with the
// nearest preceding unmatched '?', matching the textbook reading.
func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseBinary(0)
	if !p.cur.Is(token.Question) {
		return cond
	}
	p.cur.Advance()
	then := p.parseTernary()
	if !p.cur.Accept(token.Colon) {
		p.errorf(p.cur.Current().Span, ErrUnexpectedToken, "expected ':' in ternary expression, got %s", p.cur.Current().Kind)
	}
	els := p.parseTernary()
	return ast.NewConditional(span.New(p.file, cond.Span().Start, els.Span().End), cond, then, els)
}

// parseBinary is the precedence climber (§4.1): consumes operators whose
// precedence is >= minPrec and parsing each right operand with the
// operator's own precedence + 1 as the new minimum, or with that precedence
// itself when the operator is right-associative (enabling right folds for
// the compound-assignment family).
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	lhs := p.parseUnary()
	for {
		op, ok := binOpFromToken(p.cur.Current().Kind)
		if !ok || op.Precedence() < minPrec {
			break
		}
		prec := op.Precedence()
		p.cur.Advance()
		nextMin := prec + 1
		if op.RightAssoc() {
			nextMin = prec
		}
		rhs := p.parseBinary(nextMin)
		lhs = ast.NewBinExpr(span.New(p.file, lhs.Span().Start, rhs.Span().End), op, lhs, rhs)
	}
	return lhs
}

func binOpFromToken(k token.Kind) (ast.BinOp, bool) {
	switch k {
	case token.OrOr:
		return ast.OpOr, true
	case token.AndAnd:
		return ast.OpAnd, true
	case token.EqEq:
		return ast.OpEq, true
	case token.NotEq:
		return ast.OpNe, true
	case token.Lt:
		return ast.OpLt, true
	case token.LtEq:
		return ast.OpLe, true
	case token.Gt:
		return ast.OpGt, true
	case token.GtEq:
		return ast.OpGe, true
	case token.Plus:
		return ast.OpAdd, true
	case token.Minus:
		return ast.OpSub, true
	case token.Pipe:
		return ast.OpBitOr, true
	case token.Caret:
		return ast.OpBitXor, true
	case token.Amp:
		return ast.OpBitAnd, true
	case token.Star:
		return ast.OpMul, true
	case token.Slash:
		return ast.OpDiv, true
	case token.Percent:
		return ast.OpMod, true
	case token.PlusAssign:
		return ast.OpAssignAdd, true
	case token.MinusAssign:
		return ast.OpAssignSub, true
	case token.StarAssign:
		return ast.OpAssignMul, true
	case token.SlashAssign:
		return ast.OpAssignDiv, true
	case token.OrAssign:
		return ast.OpAssignOr, true
	case token.AndAssign:
		return ast.OpAssignAnd, true
	}
	return 0, false
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.cur.Current().Span
	var op ast.UnOp
	switch p.cur.Current().Kind {
	case token.Minus:
		op = ast.UnNeg
	case token.Not:
		op = ast.UnNot
	case token.Tilde:
		op = ast.UnBitNot
	default:
		return p.parsePostfix(p.parsePrimary())
	}
	p.cur.Advance()
	x := p.parseUnary()
	return ast.NewUnaryExpr(span.New(p.file, start.Start, x.Span().End), op, x)
}

// parsePostfix left-folds member access, indexing, calls (with optional
// explicit type arguments) and `as` casts over an atom (§4.1).
func (p *Parser) parsePostfix(atom ast.Expr) ast.Expr {
	for {
		switch p.cur.Current().Kind {
		case token.Dot:
			p.cur.Advance()
			name := p.expectIdent()
			end := p.cur.Peek(-1).Span
			atom = ast.NewMember(span.New(p.file, atom.Span().Start, end.End), atom, name)
		case token.LBrack:
			open := p.cur.Current().Span
			p.cur.Advance()
			idx := p.parseExpr()
			if !p.cur.Accept(token.RBrack) {
				p.errorf(open, ErrMissingRBracket, "missing closing ']' for index opened here")
				end := p.recoverTo(token.LBrack, token.RBrack)
				return ast.NewErrorExpr(span.New(p.file, atom.Span().Start, end))
			}
			end := p.cur.Peek(-1).Span
			atom = ast.NewIndex(span.New(p.file, atom.Span().Start, end.End), atom, idx)
		case token.LParen:
			atom = p.parseCallTail(atom, nil)
		case token.Lt:
			targs, ok := p.tryParseCallTypeArgs()
			if !ok {
				return atom
			}
			atom = p.parseCallTail(atom, targs)
		case token.KwAs:
			p.cur.Advance()
			typ := p.parseType()
			end := p.cur.Peek(-1).Span
			atom = ast.NewDynCast(span.New(p.file, atom.Span().Start, end.End), atom, typ)
		default:
			return atom
		}
	}
}

func (p *Parser) parseCallTail(callee ast.Expr, typeArgs []ast.Type) ast.Expr {
	open := p.cur.Current().Span
	p.cur.Advance() // consume '('
	args := p.parseExprList(token.RParen)
	if !p.cur.Accept(token.RParen) {
		p.errorf(open, ErrMissingRParen, "missing closing ')' for call opened here")
		end := p.recoverTo(token.LParen, token.RParen)
		return ast.NewErrorExpr(span.New(p.file, callee.Span().Start, end))
	}
	end := p.cur.Peek(-1).Span
	return ast.NewCall(span.New(p.file, callee.Span().Start, end.End), callee, typeArgs, args)
}

// tryParseCallTypeArgs speculatively parses a `<T1, ..., Tn>` list only
// when immediately followed by '(': this is the only context in which '<'
// means "start of explicit type arguments" rather than less-than. On
// failure it rewinds the cursor and discards any diagnostics the trial
// produced.
func (p *Parser) tryParseCallTypeArgs() ([]ast.Type, bool) {
	mark := p.cur.Mark()
	errMark := len(p.errors)
	p.cur.Advance() // consume '<'
	var args []ast.Type
	for !p.cur.Is(token.Gt) && !p.cur.IsEOF() {
		args = append(args, p.parseType())
		if !p.cur.Accept(token.Comma) {
			break
		}
	}
	if !p.cur.Accept(token.Gt) || !p.cur.Is(token.LParen) {
		p.cur.ResetTo(mark)
		p.errors = p.errors[:errMark]
		return nil, false
	}
	return args, true
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur.Current()
	start := tok.Span

	switch tok.Kind {
	case token.IDENT:
		p.cur.Advance()
		return ast.NewIdent(start, tok.Literal)
	case token.INT:
		p.cur.Advance()
		return ast.NewConstInt(start, ast.ConstI32, parseIntLiteral(tok.Literal))
	case token.INT64:
		p.cur.Advance()
		return ast.NewConstInt(start, ast.ConstI64, parseIntLiteral(tok.Literal))
	case token.UINT:
		p.cur.Advance()
		return ast.NewConstUint(start, ast.ConstU32, parseUintLiteral(tok.Literal))
	case token.UINT64:
		p.cur.Advance()
		return ast.NewConstUint(start, ast.ConstU64, parseUintLiteral(tok.Literal))
	case token.FLOAT:
		p.cur.Advance()
		return ast.NewConstFloat(start, ast.ConstF32, parseFloatLiteral(tok.Literal))
	case token.DOUBLE:
		p.cur.Advance()
		return ast.NewConstFloat(start, ast.ConstF64, parseFloatLiteral(strings.TrimSuffix(tok.Literal, "d")))
	case token.STRING:
		p.cur.Advance()
		return ast.NewConstString(start, ast.ConstString, tok.Literal)
	case token.CNAME:
		p.cur.Advance()
		return ast.NewConstString(start, ast.ConstCName, tok.Literal)
	case token.RESOURCE:
		p.cur.Advance()
		return ast.NewConstString(start, ast.ConstResource, tok.Literal)
	case token.TDBID:
		p.cur.Advance()
		return ast.NewConstString(start, ast.ConstTweakDbId, tok.Literal)
	case token.INTERP_STR:
		p.cur.Advance()
		return p.buildInterpStr(tok, start)
	case token.KwTrue:
		p.cur.Advance()
		return ast.NewConstBool(start, true)
	case token.KwFalse:
		p.cur.Advance()
		return ast.NewConstBool(start, false)
	case token.KwNull:
		p.cur.Advance()
		return ast.NewNull(start)
	case token.KwThis:
		p.cur.Advance()
		return ast.NewThis(start)
	case token.KwSuper:
		p.cur.Advance()
		return ast.NewSuper(start)
	case token.KwNew:
		return p.parseNewExpr()
	case token.LBrack:
		return p.parseArrayLit()
	case token.LParen:
		if lam, ok := p.tryParseLambda(); ok {
			return lam
		}
		return p.parseGroupedExpr()
	}

	p.errorf(start, ErrInvalidSyntax, "expected an expression, got %s", tok.Kind)
	p.cur.Advance()
	return ast.NewErrorExpr(start)
}

func (p *Parser) parseNewExpr() ast.Expr {
	start := p.cur.Current().Span
	p.cur.Advance() // consume 'new'
	typ := p.parseType()
	var args []ast.Expr
	if p.cur.Is(token.LParen) {
		open := p.cur.Current().Span
		p.cur.Advance()
		args = p.parseExprList(token.RParen)
		if !p.cur.Accept(token.RParen) {
			p.errorf(open, ErrMissingRParen, "missing closing ')' for constructor call opened here")
			end := p.recoverTo(token.LParen, token.RParen)
			return ast.NewErrorExpr(span.New(p.file, start.Start, end))
		}
	}
	end := p.cur.Peek(-1).Span
	return ast.NewNew(span.New(p.file, start.Start, end.End), typ, args)
}

func (p *Parser) parseArrayLit() ast.Expr {
	start := p.cur.Current().Span
	p.cur.Advance() // consume '['
	elems := p.parseExprList(token.RBrack)
	if !p.cur.Accept(token.RBrack) {
		p.errorf(start, ErrMissingRBracket, "missing closing ']' for array literal opened here")
		end := p.recoverTo(token.LBrack, token.RBrack)
		return ast.NewErrorExpr(span.New(p.file, start.Start, end))
	}
	end := p.cur.Peek(-1).Span
	return ast.NewArrayLit(span.New(p.file, start.Start, end.End), elems)
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	start := p.cur.Current().Span
	p.cur.Advance() // consume '('
	e := p.parseExpr()
	if !p.cur.Accept(token.RParen) {
		p.errorf(start, ErrMissingRParen, "missing closing ')' opened here")
		end := p.recoverTo(token.LParen, token.RParen)
		return ast.NewErrorExpr(span.New(p.file, start.Start, end))
	}
	return e
}

// tryParseLambda speculatively parses a `(params) => body` lambda; on
// failure it rewinds the cursor so parseGroupedExpr can retry the same
// tokens as a parenthesized expression.
func (p *Parser) tryParseLambda() (ast.Expr, bool) {
	mark := p.cur.Mark()
	errMark := len(p.errors)
	start := p.cur.Current().Span
	p.cur.Advance() // consume '('
	params := p.parseParamList(token.RParen)
	if !p.cur.Accept(token.RParen) || !p.cur.Is(token.FatArrow) {
		p.cur.ResetTo(mark)
		p.errors = p.errors[:errMark]
		return nil, false
	}
	p.cur.Advance() // consume '=>'
	var body *ast.FunctionBody
	if p.cur.Is(token.LBrace) {
		blk := p.parseBlock()
		body = ast.NewFunctionBody(blk.Span(), blk, nil)
	} else {
		e := p.parseExpr()
		body = ast.NewFunctionBody(e.Span(), nil, e)
	}
	end := p.cur.Peek(-1).Span
	return ast.NewLambda(span.New(p.file, start.Start, end.End), params, body), true
}

// buildInterpStr re-enters parsing over each expression hole's nested
// token stream (produced by the lexer) using a fresh sub-parser, per §4.1's
// "nested inputs with their own context" requirement.
func (p *Parser) buildInterpStr(tok token.Token, sp span.Span) ast.Expr {
	parts := make([]ast.StrPart, 0, len(tok.InterpParts))
	for _, part := range tok.InterpParts {
		if !part.IsExpr {
			parts = append(parts, ast.StrPart{Str: part.Text})
			continue
		}
		sub := New(p.file, part.Tokens)
		e := sub.parseExpr()
		p.errors = append(p.errors, sub.errors...)
		parts = append(parts, ast.StrPart{Expr: e})
	}
	return ast.NewInterpStr(sp, parts)
}

func parseIntLiteral(lit string) int64 {
	v, _ := strconv.ParseInt(strings.TrimRight(lit, "ul"), 10, 64)
	return v
}

func parseUintLiteral(lit string) uint64 {
	v, _ := strconv.ParseUint(strings.TrimRight(lit, "ul"), 10, 64)
	return v
}

func parseFloatLiteral(lit string) float64 {
	v, _ := strconv.ParseFloat(lit, 64)
	return v
}
