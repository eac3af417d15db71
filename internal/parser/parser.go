// Package parser turns a tokenized source file into an *ast.Module plus any
// diagnostics collected along the way. It is a recursive-descent parser: a
// precedence climber drives binary-expression folding (expr.go), postfix
// chains (member/index/call) left-fold over an atom, and any bracketed
// region that fails to parse cleanly is replaced by an Error placeholder so
// the rest of the file still parses (§4.1 error recovery).
package parser

import (
	"fmt"

	"github.com/cindergame/cinderc/internal/ast"
	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/token"
)

// Parser holds the mutable cursor and the accumulated diagnostics for one
// file. It is not safe for concurrent use; build one Parser per file.
type Parser struct {
	file   span.FileID
	cur    *Cursor
	errors []ParseError
}

// New builds a Parser over a fully tokenized input (see lexer.Tokenize).
func New(file span.FileID, toks []token.Token) *Parser {
	return &Parser{file: file, cur: NewCursor(toks)}
}

// Parse consumes the entire token stream and returns the resulting module
// together with any diagnostics. The module is non-nil even when errors
// were recorded, as long as the parser could align on item boundaries at
// all; see §4.1's (Some(partial), [errors]) outcome.
func (p *Parser) Parse() (*ast.Module, []ParseError) {
	start := p.cur.Current().Span
	var path []string
	if p.cur.Is(token.KwModule) {
		p.cur.Advance()
		path = p.parseDottedPath()
	}

	var items []*ast.ItemDecl
	for !p.cur.IsEOF() {
		before := p.cur.Mark()
		item := p.parseItemDecl()
		if item != nil {
			items = append(items, item)
		}
		if p.cur.Mark() == before {
			// Parser made no progress; skip the offending token to avoid
			// an infinite loop and keep collecting further diagnostics.
			p.errorf(p.cur.Current().Span, ErrUnexpectedToken, "unexpected token %s", p.cur.Current().Kind)
			p.cur.Advance()
		}
	}

	end := p.cur.Current().Span
	return ast.NewModule(span.New(p.file, start.Start, end.End), path, items), p.errors
}

// parseDottedPath consumes "Ident.Ident. ..." only while each dot is itself
// followed by another identifier: a trailing ".{" or ".*" (import-select and
// import-all suffixes) is left untouched for parseImport to recognize.
func (p *Parser) parseDottedPath() []string {
	var path []string
	if !p.cur.Is(token.IDENT) {
		return path
	}
	path = append(path, p.cur.Current().Literal)
	p.cur.Advance()
	for p.cur.Is(token.Dot) && p.cur.Peek(1).Kind == token.IDENT {
		p.cur.Advance() // consume '.'
		path = append(path, p.cur.Current().Literal)
		p.cur.Advance()
	}
	return path
}

// parseItemDecl parses one top-level or nested item: leading doc comments,
// annotations, visibility, qualifiers, then the keyword-dispatched item body.
func (p *Parser) parseItemDecl() *ast.ItemDecl {
	start := p.cur.Current().Span
	doc := p.collectDocComments()

	var anns []*ast.Annotation
	for p.cur.Is(token.At) {
		anns = append(anns, p.parseAnnotation())
	}

	vis := ast.VisDefault
	switch p.cur.Current().Kind {
	case token.KwPublic:
		vis = ast.VisPublic
		p.cur.Advance()
	case token.KwProtected:
		vis = ast.VisProtected
		p.cur.Advance()
	case token.KwPrivate:
		vis = ast.VisPrivate
		p.cur.Advance()
	}

	var quals ast.Qualifiers
	for {
		q, ok := qualifierFor(p.cur.Current().Kind)
		if !ok {
			break
		}
		quals |= q
		p.cur.Advance()
	}

	var item ast.Item
	switch p.cur.Current().Kind {
	case token.KwImport:
		item = p.parseImport()
	case token.KwClass:
		item = p.parseAggregate(ast.KindClass)
	case token.KwStruct:
		item = p.parseAggregate(ast.KindStruct)
	case token.KwFunc:
		item = p.parseFunction()
	case token.KwLet:
		item = p.parseLet()
	case token.KwEnum:
		item = p.parseEnum()
	default:
		return nil
	}
	if item == nil {
		return nil
	}

	end := p.cur.Peek(-1).Span
	return ast.NewItemDeclFull(span.New(p.file, start.Start, end.End), anns, vis, quals, doc, item)
}

func qualifierFor(k token.Kind) (ast.Qualifiers, bool) {
	switch k {
	case token.KwAbstract:
		return ast.QAbstract, true
	case token.KwCallback:
		return ast.QCallback, true
	case token.KwConst:
		return ast.QConst, true
	case token.KwExec:
		return ast.QExec, true
	case token.KwFinal:
		return ast.QFinal, true
	case token.KwImportOnly:
		return ast.QImportOnly, true
	case token.KwNative:
		return ast.QNative, true
	case token.KwPersistent:
		return ast.QPersistent, true
	case token.KwQuest:
		return ast.QQuest, true
	case token.KwStatic:
		return ast.QStatic, true
	}
	return 0, false
}

// collectDocComments gathers consecutive leading /// lines immediately
// preceding the next item.
func (p *Parser) collectDocComments() []string {
	var doc []string
	for p.cur.Is(token.DOC_COMMENT) {
		doc = append(doc, p.cur.Current().Literal)
		p.cur.Advance()
	}
	return doc
}

func (p *Parser) parseAnnotation() *ast.Annotation {
	start := p.cur.Current().Span
	p.cur.Advance() // consume '@'
	name := p.expectIdent()
	var args []ast.Expr
	if p.cur.Accept(token.LParen) {
		args = p.parseExprList(token.RParen)
		p.expectClose(token.RParen, start)
	}
	end := p.cur.Peek(-1).Span
	return ast.NewAnnotation(span.New(p.file, start.Start, end.End), name, args)
}

func (p *Parser) expectIdent() string {
	if p.cur.Is(token.IDENT) {
		name := p.cur.Current().Literal
		p.cur.Advance()
		return name
	}
	p.errorf(p.cur.Current().Span, ErrExpectedIdent, "expected identifier, got %s", p.cur.Current().Kind)
	return ""
}

// expectClose consumes k if present; otherwise records a missing-delimiter
// error anchored at the opening bracket's span.
func (p *Parser) expectClose(k token.Kind, open span.Span) bool {
	if p.cur.Accept(k) {
		return true
	}
	code := ErrMissingRParen
	switch k {
	case token.RBrack:
		code = ErrMissingRBracket
	case token.RBrace:
		code = ErrMissingRBrace
	}
	p.errorf(open, code, "missing closing %s for delimiter opened here", k)
	return false
}

func (p *Parser) errorf(sp span.Span, code, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Span: sp, Message: fmt.Sprintf(format, args...), Code: code})
}
