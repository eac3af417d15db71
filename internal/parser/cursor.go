package parser

import "github.com/cindergame/cinderc/internal/token"

// Cursor is a read-only navigation handle over an already-tokenized input.
// Unlike an incremental lexer-backed cursor, the whole token slice is
// materialized up front (the lexer always runs to completion first), so
// lookahead and backtracking are just index arithmetic: Mark/ResetTo save
// and restore a single int rather than a buffered window.
type Cursor struct {
	toks []token.Token
	pos  int
}

// NewCursor wraps a token slice, which must end with an EOF token.
func NewCursor(toks []token.Token) *Cursor {
	if len(toks) == 0 {
		toks = []token.Token{{Kind: token.EOF}}
	}
	return &Cursor{toks: toks}
}

// Current returns the token at the cursor's position.
func (c *Cursor) Current() token.Token { return c.toks[c.pos] }

// Peek returns the token n positions ahead of the current position; Peek(0)
// is Current(). Requests past EOF saturate at the last (EOF) token.
func (c *Cursor) Peek(n int) token.Token {
	i := c.pos + n
	if i < 0 {
		i = 0
	}
	if i >= len(c.toks) {
		i = len(c.toks) - 1
	}
	return c.toks[i]
}

// Advance moves the cursor one token forward, saturating at EOF.
func (c *Cursor) Advance() {
	if c.pos < len(c.toks)-1 {
		c.pos++
	}
}

// Is reports whether the current token has kind k.
func (c *Cursor) Is(k token.Kind) bool { return c.toks[c.pos].Kind == k }

// IsEOF reports whether the cursor is sitting on the terminal EOF token.
func (c *Cursor) IsEOF() bool { return c.Is(token.EOF) }

// Accept advances and returns true if the current token has kind k,
// otherwise leaves the cursor unchanged and returns false.
func (c *Cursor) Accept(k token.Kind) bool {
	if c.Is(k) {
		c.Advance()
		return true
	}
	return false
}

// Mark saves the current position for later backtracking via ResetTo.
func (c *Cursor) Mark() int { return c.pos }

// ResetTo restores a position previously returned by Mark.
func (c *Cursor) ResetTo(mark int) { c.pos = mark }
