// Package locals implements the per-function table of numbered variables
// and parameters (§3.4): ids are minted from a counter shared across every
// nested Locals table in one compilation unit, so nested lambdas receive
// globally unique ids, and each table records the closure depth it lives at
// so captures can be tracked across lambda boundaries.
package locals

import (
	"sync/atomic"

	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/types"
)

// LocalID is a globally unique identifier for one local variable or
// parameter within a compilation unit.
type LocalID uint32

// Counter mints LocalIDs. It uses atomic.Uint32 rather than a bare integer
// so a host that parses multiple files concurrently on one shared counter
// does not race, even though any single compilation is itself
// single-threaded (§5).
type Counter struct {
	next atomic.Uint32
}

// NewCounter returns a counter starting at id 0.
func NewCounter() *Counter { return &Counter{} }

func (c *Counter) mint() LocalID {
	return LocalID(c.next.Add(1) - 1)
}

// LocalInfo describes one minted local: its id, its (possibly still
// polymorphic) type, and an optional span for diagnostics pointing back at
// its declaration or parameter position.
type LocalInfo struct {
	ID   LocalID
	Type types.Type
	Span *span.Span // nil when the local has no single declaring span
}

// Locals is one function's table of locals, at a fixed closure depth.
type Locals struct {
	counter *Counter
	depth   uint32
	entries []*LocalInfo
}

// New binds a shared counter to a fresh, empty table at the given closure
// depth (0 for the outermost function, +1 per nested lambda).
func New(counter *Counter, depth uint32) *Locals {
	return &Locals{counter: counter, depth: depth}
}

// Depth reports the closure nesting depth this table was created at.
func (l *Locals) Depth() uint32 { return l.depth }

// Counter returns the shared counter backing this table, so a nested
// lambda's own Locals table can be minted from the same id space.
func (l *Locals) Counter() *Counter { return l.counter }

// Entries returns the locals minted so far, in minting order.
func (l *Locals) Entries() []*LocalInfo { return l.entries }

// AddVar appends a variable local, incrementing the shared counter before
// returning a reference to the appended entry.
func (l *Locals) AddVar(t types.Type, sp span.Span) *LocalInfo {
	return l.add(t, &sp)
}

// AddParam appends a parameter local; sp is nil when the parameter's source
// span is not tracked (e.g. a synthesized parameter).
func (l *Locals) AddParam(t types.Type, sp *span.Span) *LocalInfo {
	return l.add(t, sp)
}

func (l *Locals) add(t types.Type, sp *span.Span) *LocalInfo {
	info := &LocalInfo{ID: l.counter.mint(), Type: t, Span: sp}
	l.entries = append(l.entries, info)
	return info
}

// Capture pairs a local id with the number of scope levels to traverse
// outward, from the use site, to reach the local's defining frame.
type Capture struct {
	Local LocalID
	Depth uint32
}

// PopScope is applied when a lowering step exits one scope: a capture
// rooted in the just-exited scope (Depth == 0) should be dropped by the
// caller; PopScope reports whether that is the case and, if not, returns the
// capture with its depth decremented by one.
func (c Capture) PopScope() (Capture, bool) {
	if c.Depth == 0 {
		return c, false
	}
	return Capture{Local: c.Local, Depth: c.Depth - 1}, true
}
