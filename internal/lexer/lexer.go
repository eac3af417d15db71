// Package lexer tokenizes scripting-dialect source text into the
// (Token, Span) pairs the parser consumes.
//
// # Unicode and column positions
//
// The scanner handles UTF-8 encoded source correctly: it advances one rune
// at a time, but token spans are byte offsets into the original text (so
// they compose directly with SourceMap/File, which also work in bytes).
// Line/column positions reported in lexer errors are rune counts from the
// start of the line, not byte offsets or display widths, matching how the
// rest of this codebase's ancestor lexer reported positions.
package lexer

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/token"
)

// Error is a single lexical error with a human position.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e Error) String() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Option configures a Lexer. Mirrors the functional-options idiom used
// elsewhere in this codebase instead of a config struct or file.
type Option func(*Lexer)

// WithTracing enables emitting debug traces of scanned tokens through
// slog.Debug, for interactive debugging of the scanner.
func WithTracing(trace bool) Option {
	return func(l *Lexer) { l.tracing = trace }
}

// Lexer scans a single file's source text into tokens.
type Lexer struct {
	file   span.FileID
	input  string
	errors []Error

	pos     int // byte offset of ch
	readPos int // byte offset of the next rune
	line    int
	column  int // rune count from line start
	ch      rune

	tracing bool
}

// New creates a Lexer for the given file. input must be the exact text
// registered under file in the SourceMap, so that spans line up.
func New(file span.FileID, input string, opts ...Option) *Lexer {
	if strings.HasPrefix(input, "\xef\xbb\xbf") {
		input = input[len("\xef\xbb\xbf"):]
	}
	l := &Lexer{file: file, input: input, line: 1, column: 0}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Errors returns accumulated lexical errors (invalid UTF-8, unterminated
// literals, illegal characters).
func (l *Lexer) Errors() []Error { return l.errors }

func (l *Lexer) addError(msg string) {
	l.errors = append(l.errors, Error{Message: msg, Line: l.line, Column: l.column})
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
	l.column++
	if r == '\n' {
		l.line++
		l.column = 0
	}
	if r == utf8.RuneError && size == 1 {
		l.addError("invalid UTF-8 encoding")
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) peekCharAt(n int) rune {
	pos := l.readPos
	for i := 0; i < n; i++ {
		if pos >= len(l.input) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Tokenize scans the entire input and returns the resulting token slice,
// always terminated by a single EOF token. Lexical errors encountered along
// the way are collected and available from Errors (scanning never stops
// early; illegal runs are emitted as ILLEGAL tokens so the parser can still
// attempt recovery).
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		t := l.Next()
		if l.tracing {
			slog.Debug("scanned token", "kind", t.Kind, "literal", t.Literal, "span", t.Span)
		}
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

// Next scans and returns the next token.
func (l *Lexer) Next() token.Token {
	l.skipWhitespace()

	start := l.pos
	sp := func(end int) span.Span { return span.New(l.file, uint32(start), uint32(end)) }

	if l.ch == 0 {
		return token.Token{Kind: token.EOF, Span: sp(l.pos)}
	}

	switch {
	case l.ch == '/' && l.peekChar() == '/':
		return l.scanLineComment(start)
	case l.ch == '/' && l.peekChar() == '*':
		l.skipBlockComment()
		return l.Next()
	case (l.ch == 'n' || l.ch == 'r' || l.ch == 't') && l.peekChar() == '"':
		kind := map[rune]token.Kind{'n': token.CNAME, 'r': token.RESOURCE, 't': token.TDBID}[l.ch]
		l.readChar() // consume prefix letter, land on opening quote
		return l.scanString(start, kind, 1)
	case isIdentStart(l.ch):
		return l.scanIdentOrKeyword(start)
	case isDigit(l.ch):
		return l.scanNumber(start)
	case l.ch == '"':
		return l.scanString(start, token.STRING, 0)
	}

	return l.scanOperator(start)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

func (l *Lexer) scanLineComment(start int) token.Token {
	doc := l.peekCharAt(1) == '/' // "///"
	l.readChar()
	l.readChar()
	if doc {
		l.readChar()
	}
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	text := l.input[start:l.pos]
	if !doc {
		return l.Next()
	}
	return token.Token{Kind: token.DOC_COMMENT, Literal: strings.TrimSpace(strings.TrimPrefix(text, "///")), Span: span.New(l.file, uint32(start), uint32(l.pos))}
}

func (l *Lexer) skipBlockComment() {
	l.readChar()
	l.readChar()
	for {
		if l.ch == 0 {
			l.addError("unterminated block comment")
			return
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		l.readChar()
	}
}

func (l *Lexer) scanIdentOrKeyword(start int) token.Token {
	for isIdentPart(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.pos]
	sp := span.New(l.file, uint32(start), uint32(l.pos))
	if kw, ok := token.Keywords[text]; ok {
		return token.Token{Kind: kw, Literal: text, Span: sp}
	}
	if text == "true" {
		return token.Token{Kind: token.KwTrue, Literal: text, Span: sp}
	}
	if text == "false" {
		return token.Token{Kind: token.KwFalse, Literal: text, Span: sp}
	}
	return token.Token{Kind: token.IDENT, Literal: text, Span: sp}
}

// scanNumber handles the six numeric-literal flavours from the data model:
// bare (I32), `l` (I64), `u` (U32), `ul` (U64), trailing `.` (F32) and `.d`
// (F64, aka Double).
func (l *Lexer) scanNumber(start int) token.Token {
	for isDigit(l.ch) {
		l.readChar()
	}
	kind := token.INT
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
		kind = token.FLOAT
	} else if l.ch == '.' {
		// trailing dot with no following digits, e.g. "5." -> F32 literal
		l.readChar()
		kind = token.FLOAT
	}
	if kind == token.FLOAT && l.ch == 'd' {
		l.readChar()
		kind = token.DOUBLE
	} else if kind == token.INT {
		switch {
		case l.ch == 'u' && l.peekChar() == 'l':
			l.readChar()
			l.readChar()
			kind = token.UINT64
		case l.ch == 'u':
			l.readChar()
			kind = token.UINT
		case l.ch == 'l':
			l.readChar()
			kind = token.INT64
		}
	}
	return token.Token{Kind: kind, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
}

// scanString scans a (possibly prefixed) string literal starting at the
// opening quote. prefixLen is the number of bytes consumed before start that
// belong to this token but precede the quote (1 for `n`/`r`/`t` prefixes).
// Interpolation holes `${...}` are recursively tokenized into InterpParts
// and the token kind becomes INTERP_STR whenever at least one hole is
// present.
func (l *Lexer) scanString(start int, plainKind token.Kind, prefixLen int) token.Token {
	l.readChar() // consume opening quote
	var sb strings.Builder
	var parts []token.InterpPart
	partStart := l.pos
	for {
		if l.ch == 0 {
			l.addError("unterminated string literal")
			break
		}
		if l.ch == '"' {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch != 0 {
				sb.WriteRune(l.ch)
				l.readChar()
			}
			continue
		}
		if l.ch == '$' && l.peekChar() == '{' {
			if sb.Len() > 0 || partStart != l.pos {
				parts = append(parts, token.InterpPart{Text: sb.String(), Span: span.New(l.file, uint32(partStart), uint32(l.pos))})
				sb.Reset()
			}
			holeStart := l.pos
			l.readChar()
			l.readChar()
			depth := 1
			exprStart := l.pos
			for depth > 0 {
				if l.ch == 0 {
					l.addError("unterminated interpolation hole")
					break
				}
				if l.ch == '{' {
					depth++
				} else if l.ch == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				l.readChar()
			}
			// Lex the hole over the file's own text, bounded at the closing
			// brace, so the nested tokens carry file-relative spans.
			nested := &Lexer{file: l.file, input: l.input[:l.pos], readPos: exprStart, line: l.line}
			nested.readChar()
			parts = append(parts, token.InterpPart{
				IsExpr: true,
				Tokens: nested.Tokenize(),
				Span:   span.New(l.file, uint32(holeStart), uint32(l.pos+1)),
			})
			l.readChar() // consume '}'
			partStart = l.pos
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if parts != nil && (sb.Len() > 0 || partStart != l.pos) {
		parts = append(parts, token.InterpPart{Text: sb.String(), Span: span.New(l.file, uint32(partStart), uint32(l.pos))})
	}
	l.readChar() // consume closing quote
	sp := span.New(l.file, uint32(start), uint32(l.pos))
	if parts != nil {
		return token.Token{Kind: token.INTERP_STR, InterpParts: parts, Span: sp}
	}
	return token.Token{Kind: plainKind, Literal: sb.String(), Span: sp}
}

func (l *Lexer) scanOperator(start int) token.Token {
	ch := l.ch
	switch ch {
	case '(':
		l.readChar()
		return l.one(start, token.LParen)
	case ')':
		l.readChar()
		return l.one(start, token.RParen)
	case '[':
		l.readChar()
		return l.one(start, token.LBrack)
	case ']':
		l.readChar()
		return l.one(start, token.RBrack)
	case '{':
		l.readChar()
		return l.one(start, token.LBrace)
	case '}':
		l.readChar()
		return l.one(start, token.RBrace)
	case ',':
		l.readChar()
		return l.one(start, token.Comma)
	case ';':
		l.readChar()
		return l.one(start, token.Semi)
	case '@':
		l.readChar()
		return l.one(start, token.At)
	case '?':
		l.readChar()
		return l.one(start, token.Question)
	case ':':
		l.readChar()
		return l.one(start, token.Colon)
	case '.':
		l.readChar()
		if l.ch == '.' {
			l.readChar()
			return l.one(start, token.DotDot)
		}
		return token.Token{Kind: token.Dot, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
	case '-':
		l.readChar()
		switch l.ch {
		case '>':
			l.readChar()
			return l.one(start, token.Arrow)
		case '=':
			l.readChar()
			return l.one(start, token.MinusAssign)
		}
		return token.Token{Kind: token.Minus, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
	case '+':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.one(start, token.PlusAssign)
		}
		return token.Token{Kind: token.Plus, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
	case '*':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.one(start, token.StarAssign)
		}
		return token.Token{Kind: token.Star, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
	case '/':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.one(start, token.SlashAssign)
		}
		return token.Token{Kind: token.Slash, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
	case '%':
		l.readChar()
		return token.Token{Kind: token.Percent, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
	case '=':
		l.readChar()
		switch l.ch {
		case '=':
			l.readChar()
			return l.one(start, token.EqEq)
		case '>':
			l.readChar()
			return l.one(start, token.FatArrow)
		}
		return token.Token{Kind: token.Assign, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
	case '!':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.one(start, token.NotEq)
		}
		return token.Token{Kind: token.Not, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
	case '<':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.one(start, token.LtEq)
		}
		return token.Token{Kind: token.Lt, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
	case '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.one(start, token.GtEq)
		}
		return token.Token{Kind: token.Gt, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
	case '&':
		l.readChar()
		switch l.ch {
		case '&':
			l.readChar()
			return l.one(start, token.AndAnd)
		case '=':
			l.readChar()
			return l.one(start, token.AndAssign)
		}
		return token.Token{Kind: token.Amp, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
	case '|':
		l.readChar()
		switch l.ch {
		case '|':
			l.readChar()
			return l.one(start, token.OrOr)
		case '=':
			l.readChar()
			return l.one(start, token.OrAssign)
		}
		return token.Token{Kind: token.Pipe, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
	case '~':
		l.readChar()
		return l.one(start, token.Tilde)
	case '^':
		l.readChar()
		return l.one(start, token.Caret)
	}
	l.readChar()
	l.addError(fmt.Sprintf("unexpected character %q", ch))
	return token.Token{Kind: token.ILLEGAL, Literal: string(ch), Span: span.New(l.file, uint32(start), uint32(l.pos))}
}

func (l *Lexer) one(start int, k token.Kind) token.Token {
	return token.Token{Kind: k, Literal: l.input[start:l.pos], Span: span.New(l.file, uint32(start), uint32(l.pos))}
}
