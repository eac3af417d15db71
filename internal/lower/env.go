// Package lower implements Env, the glue that threads the type environment,
// free-function index, and local-variable table through statement/expression
// lowering (§4.5). It also derives Capture values (§3.4) when a name
// resolves to a local defined in an enclosing closure.
package lower

import (
	"iter"

	"github.com/cindergame/cinderc/internal/locals"
	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/symbols"
	"github.com/cindergame/cinderc/internal/typeenv"
	"github.com/cindergame/cinderc/internal/types"
)

// Env wires a TypeEnv, a free-function index and a locals scope together
// for one point in the lowering walk. Like its three constituent scoped
// maps, it is copy-on-write: IntroduceScope/IntroduceLambda never mutate the
// parent.
type Env struct {
	Types  *typeenv.Env
	Funcs  *symbols.Index
	Locals *locals.Locals

	scope  map[string]*locals.LocalInfo
	parent *Env
}

// New builds a root Env for a top-level function body, at closure depth 0.
func New(types *typeenv.Env, funcs *symbols.Index, counter *locals.Counter) *Env {
	return &Env{
		Types:  types,
		Funcs:  funcs,
		Locals: locals.New(counter, 0),
		scope:  make(map[string]*locals.LocalInfo),
	}
}

// IntroduceScope returns a child environment with a fresh, empty
// local-scope layer pushed on top. The child borrows from the parent but is
// independently mutable; this is what a block body (if/while/for, a switch
// case) calls on entry. Closure depth is unchanged — the child still writes
// into the same Locals table as the parent.
func (e *Env) IntroduceScope() *Env {
	return &Env{
		Types:  e.Types.Child(),
		Funcs:  e.Funcs.Child(),
		Locals: e.Locals,
		scope:  make(map[string]*locals.LocalInfo),
		parent: e,
	}
}

// IntroduceLambda returns a child environment one closure depth deeper, with
// its own Locals table sharing the enclosing counter so ids stay globally
// unique across the whole compilation unit.
func (e *Env) IntroduceLambda() *Env {
	child := e.IntroduceScope()
	child.Locals = locals.New(e.Locals.Counter(), e.Locals.Depth()+1)
	return child
}

// DefineLocal mints a new local in this Env's Locals table and inserts it
// into the topmost scope layer under name, returning the minted entry.
func (e *Env) DefineLocal(name string, t types.Type, sp span.Span) *locals.LocalInfo {
	info := e.Locals.AddVar(t, sp)
	e.scope[name] = info
	return info
}

// DefineParam mints a parameter local the same way DefineLocal mints a
// variable local.
func (e *Env) DefineParam(name string, t types.Type, sp *span.Span) *locals.LocalInfo {
	info := e.Locals.AddParam(t, sp)
	e.scope[name] = info
	return info
}

// Lookup searches from the innermost lexical scope outward for name,
// returning the capture depth (scope levels crossed between this Env's
// closure depth and the depth the local was defined at) alongside its
// LocalInfo.
func (e *Env) Lookup(name string) (info *locals.LocalInfo, captureDepth uint32, ok bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, found := cur.scope[name]; found {
			return v, e.Locals.Depth() - cur.Locals.Depth(), true
		}
	}
	return nil, 0, false
}

// LookupCapture is a convenience wrapper around Lookup that packages the
// result as a locals.Capture when the name resolves to an enclosing scope
// (captureDepth > 0); it reports ok=false for a same-scope local, since
// those need no capture at all.
func (e *Env) LookupCapture(name string) (locals.Capture, bool) {
	info, depth, found := e.Lookup(name)
	if !found || depth == 0 {
		return locals.Capture{}, false
	}
	return locals.Capture{Local: info.ID, Depth: depth}, true
}

// QueryFreeFunctions yields every free function visible under name, walking
// from the innermost function scope outward.
func (e *Env) QueryFreeFunctions(name string) iter.Seq[*symbols.FunctionEntry] {
	return e.Funcs.Query(name)
}
