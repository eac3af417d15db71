// Package source implements the append-only file registry that hands out
// stable FileID handles and answers byte-offset to line/column queries in
// O(log lines) using a cached line-start table per file.
package source

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cindergame/cinderc/internal/span"
)

// File is one registered source file. Line-start offsets are computed once,
// at registration time, and never invalidated: files are immutable once
// pushed.
type File struct {
	path       string
	source     string
	lineStarts []uint32 // byte offset of the first byte of each line; lineStarts[0] == 0
}

func newFile(path, source string) *File {
	f := &File{path: path, source: source}
	f.lineStarts = []uint32{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			f.lineStarts = append(f.lineStarts, uint32(i+1))
		}
	}
	return f
}

// Path returns the registered path or display name for this file.
func (f *File) Path() string { return f.path }

// Source returns the file's full text.
func (f *File) Source() string { return f.source }

// Lookup converts a byte offset into a 1-based (line, column) pair. Column
// is a byte offset within the line; callers needing rune-aware columns
// should decode the slice themselves, mirroring how the lexer already
// tracks column as a rune count while scanning.
func (f *File) Lookup(offset uint32) (line, col int) {
	// binary search for the last line start <= offset
	i := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	})
	line = i // lineStarts[i-1] is the line start; 0-based index i-1, so line number (1-based) is i
	if line < 1 {
		line = 1
	}
	lineStart := f.lineStarts[line-1]
	return line, int(offset-lineStart) + 1
}

// LineContents returns the text of the given 1-based line, without its
// trailing newline.
func (f *File) LineContents(line int) string {
	if line < 1 || line > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[line-1]
	var end uint32
	if line < len(f.lineStarts) {
		end = f.lineStarts[line] - 1 // drop the '\n'
	} else {
		end = uint32(len(f.source))
	}
	if end < start {
		end = start
	}
	return f.source[start:end]
}

// SpanContents returns the exact text a span covers.
func (f *File) SpanContents(sp span.Span) string {
	if int(sp.End) > len(f.source) {
		return f.source[sp.Start:]
	}
	return f.source[sp.Start:sp.End]
}

// LineAndOffset is an alias for Lookup kept for parity with the original
// file.rs naming; it returns the same (line, col) pair.
func (f *File) LineAndOffset(offset uint32) (line, col int) { return f.Lookup(offset) }

// Map is the stable-addressed, append-only file registry. It grows forward
// (negative FileIDs) and backward (non-negative FileIDs) from zero, exactly
// like the two-FrozenVec "stable deque" in the component this is grounded
// on: one slice serves each direction so indices already handed out never
// move.
type Map struct {
	mu    sync.Mutex
	front []*File // index 0 holds FileID -1, index 1 holds FileID -2, ...
	back  []*File // index 0 holds FileID 0, index 1 holds FileID 1, ...
}

// NewMap creates an empty source map.
func NewMap() *Map { return &Map{} }

// PushFront registers a file and returns a negative FileID.
func (m *Map) PushFront(path, source string) span.FileID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.front = append(m.front, newFile(path, source))
	return span.FileID(-len(m.front))
}

// PushBack registers a file and returns a non-negative FileID.
func (m *Map) PushBack(path, source string) span.FileID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.back = append(m.back, newFile(path, source))
	return span.FileID(len(m.back) - 1)
}

// Get looks up a previously registered file by its stable id.
func (m *Map) Get(id span.FileID) (*File, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id < 0 {
		idx := int(-id) - 1
		if idx < 0 || idx >= len(m.front) {
			return nil, false
		}
		return m.front[idx], true
	}
	idx := int(id)
	if idx < 0 || idx >= len(m.back) {
		return nil, false
	}
	return m.back[idx], true
}

// DisplayAt renders "path:line:col" for a span's start position, for use in
// test output and example diagnostic formatting. The core parser/resolver
// never call this themselves; they only ever trade in Span/FileID.
func (m *Map) DisplayAt(sp span.Span) string {
	f, ok := m.Get(sp.File)
	if !ok {
		return fmt.Sprintf("<unknown file %d>:%d", sp.File, sp.Start)
	}
	line, col := f.Lookup(sp.Start)
	return fmt.Sprintf("%s:%d:%d", f.Path(), line, col)
}

// SpanContents is a convenience wrapper around Get + File.SpanContents.
func (m *Map) SpanContents(sp span.Span) string {
	f, ok := m.Get(sp.File)
	if !ok {
		return ""
	}
	return f.SpanContents(sp)
}

// String implements a minimal "DisplaySourceMap"-style dump of every
// registered file, mirroring the source's sample debug output. Intended for
// tests only.
func (m *Map) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sb strings.Builder
	for i := len(m.front) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "[%d] %s\n", -(i + 1), m.front[i].Path())
	}
	for i, f := range m.back {
		fmt.Fprintf(&sb, "[%d] %s\n", i, f.Path())
	}
	return sb.String()
}
