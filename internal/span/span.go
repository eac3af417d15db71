// Package span provides the position primitives shared by the lexer,
// parser, type environment and error taxonomy: a half-open byte range
// tagged with the file it belongs to.
package span

import "fmt"

// FileID is a stable handle into a source map. Negative ids were minted by
// PushFront, non-negative ids by PushBack; zero is a valid back id.
type FileID int32

// Span is a half-open byte range [Start, End) within the file identified by
// File. Spans from distinct files are never combined.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// New builds a span, panicking if start > end: every caller constructs spans
// from already-validated token/node boundaries, so this is a programmer
// error rather than a recoverable one.
func New(file FileID, start, end uint32) Span {
	if start > end {
		panic(fmt.Sprintf("span: start %d > end %d", start, end))
	}
	return Span{File: file, Start: start, End: end}
}

// Len reports the number of bytes the span covers.
func (s Span) Len() uint32 { return s.End - s.Start }

// Contains reports whether other lies entirely within s, in the same file.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// ContainsOffset reports whether the byte offset pos (in the same file)
// falls within [Start, End).
func (s Span) ContainsOffset(pos uint32) bool {
	return s.Start <= pos && pos < s.End
}

// Merge returns the smallest span enclosing both s and other. Both must
// belong to the same file.
func (s Span) Merge(other Span) Span {
	if s.File != other.File {
		panic("span: cannot merge spans from different files")
	}
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{File: s.File, Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d..%d", s.File, s.Start, s.End)
}

// Spanned pairs any payload with the span it was parsed from. The AST
// package does not use it: its nodes carry their spans directly, and
// ast.Unwrap strips those to produce the bare shape.
type Spanned[A any] struct {
	Node A
	Span Span
}

// Wrap pairs a node with its span.
func Wrap[A any](node A, sp Span) Spanned[A] {
	return Spanned[A]{Node: node, Span: sp}
}
