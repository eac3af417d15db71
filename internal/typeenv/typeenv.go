// Package typeenv implements the scoped map from a source-level type name
// to a TypeRef, and the resolver that turns ast.Type syntax into an internal
// types.Type. Grounded on the teacher's internal/semantic.SymbolTable
// scoping idiom (a mutable top layer over an immutable parent pointer),
// generalized from variable symbols to type bindings and given the
// Name/Var/LazyVar sum the type-parameter resolver needs.
package typeenv

import (
	"github.com/cindergame/cinderc/internal/ast"
	"github.com/cindergame/cinderc/internal/errtrace"
	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/types"
)

// TypeRef is the value stored for a bound name: a resolved TypeId, a fully
// constructed context variable, or a lazy suspension that produces one.
type TypeRef interface {
	isTypeRef()
}

// NameRef binds a name directly to a TypeId (primitive, aggregate, or
// predefined sugar).
type NameRef struct{ ID types.TypeId }

func (NameRef) isTypeRef() {}

// VarRef binds a name to an already-constructed context variable.
type VarRef struct{ Var *types.CtxVar }

func (VarRef) isTypeRef() {}

// LazyRef binds a name to a suspension that resolves to a context variable
// only when forced against the environment being built; see lazyVar below.
type LazyRef struct{ lazy *lazyVar }

func (LazyRef) isTypeRef() {}

// Env is a scoped map: a mutable top layer chained to an immutable parent.
// Introducing a scope never mutates the parent (Child); popping returns the
// topmost layer as an owned map (Pop), matching the copy-on-write policy
// shared by the type, function and locals scopes.
type Env struct {
	parent *Env
	top    map[string]TypeRef
}

// New returns an empty, scope-less environment.
func New() *Env {
	return &Env{top: make(map[string]TypeRef)}
}

// WithDefaultTypes returns a fresh environment with the predefined sugar
// bindings always present in the outermost scope.
func WithDefaultTypes() *Env {
	e := New()
	e.Define("array", NameRef{types.ARRAY})
	e.Define("ref", NameRef{types.REF})
	e.Define("wref", NameRef{types.WREF})
	e.Define("script_ref", NameRef{types.SCRIPT_REF})
	return e
}

// Child splits off a new scope on top of e; e itself is never mutated.
func (e *Env) Child() *Env {
	return &Env{parent: e, top: make(map[string]TypeRef)}
}

// Pop returns the topmost layer as an owned map, and the parent scope.
// Calling Pop on the outermost environment returns a nil parent.
func (e *Env) Pop() (map[string]TypeRef, *Env) {
	return e.top, e.parent
}

// Define inserts name into the topmost scope, shadowing any binding of the
// same name in an enclosing scope.
func (e *Env) Define(name string, ref TypeRef) {
	e.top[name] = ref
}

// Lookup searches from the innermost scope outward.
func (e *Env) Lookup(name string) (TypeRef, bool) {
	for s := e; s != nil; s = s.parent {
		if ref, ok := s.top[name]; ok {
			return ref, true
		}
	}
	return nil, false
}

// Resolve maps a parsed type expression to an internal types.Type,
// implementing §4.2's four alternatives.
func (e *Env) Resolve(t ast.Type, sp span.Span) (types.Type, error) {
	switch n := t.(type) {
	case nil:
		return types.Type{}, &errtrace.Error{Kind: errtrace.UnresolvedType, Sp: sp, Name: "<missing type>"}
	case *ast.Named:
		return e.resolveNamed(n, sp)
	case *ast.ArrayType:
		elem, err := e.Resolve(n.Elem, sp)
		if err != nil {
			return types.Type{}, err
		}
		return types.App(types.ARRAY, elem), nil
	case *ast.StaticArrayType:
		elem, err := e.Resolve(n.Elem, sp)
		if err != nil {
			return types.Type{}, err
		}
		id, ferr := types.ArrayWithSize(n.Size)
		if ferr != nil {
			return types.Type{}, &errtrace.Error{Kind: errtrace.UnsupportedStaticArraySize, Sp: sp, HaveN: n.Size}
		}
		return types.App(id, elem), nil
	case *ast.FnType:
		args := make([]types.Type, 0, len(n.Params)+1)
		for _, p := range n.Params {
			rt, err := e.Resolve(p, sp)
			if err != nil {
				return types.Type{}, err
			}
			args = append(args, rt)
		}
		ret, err := e.Resolve(n.Return, sp)
		if err != nil {
			return types.Type{}, err
		}
		args = append(args, ret)
		id, ferr := types.FnWithArity(len(n.Params))
		if ferr != nil {
			return types.Type{}, &errtrace.Error{Kind: errtrace.UnsupportedArity, Sp: sp, HaveN: len(n.Params)}
		}
		return types.App(id, args...), nil
	default:
		return types.Type{}, &errtrace.Error{Kind: errtrace.UnresolvedType, Sp: sp, Name: "<unknown type node>"}
	}
}

func (e *Env) resolveNamed(n *ast.Named, sp span.Span) (types.Type, error) {
	ref, ok := e.Lookup(n.Name)
	if !ok {
		return types.Type{}, &errtrace.Error{Kind: errtrace.UnresolvedType, Sp: sp, Name: n.Name}
	}
	switch b := ref.(type) {
	case NameRef:
		if b.ID == types.REF && len(n.Args) == 1 {
			return e.Resolve(n.Args[0], sp)
		}
		args := make([]types.Type, 0, len(n.Args))
		for _, a := range n.Args {
			rt, err := e.Resolve(a, sp)
			if err != nil {
				return types.Type{}, err
			}
			args = append(args, rt)
		}
		return types.App(b.ID, args...), nil
	case VarRef:
		// Type arguments against a bound context variable are ignored here;
		// a higher layer validates arity against the variable's own shape.
		return types.VarType(b.Var), nil
	case LazyRef:
		v, err := b.lazy.force(e)
		if err != nil {
			return types.Type{}, err
		}
		return types.VarType(v), nil
	default:
		return types.Type{}, &errtrace.Error{Kind: errtrace.UnresolvedType, Sp: sp, Name: n.Name}
	}
}
