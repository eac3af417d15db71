package typeenv

import (
	"github.com/cindergame/cinderc/internal/ast"
	"github.com/cindergame/cinderc/internal/errtrace"
	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/types"
)

// lazyState tracks a lazyVar's memoisation progress. A small three-state
// cell rather than a mutex-guarded flag: forcing only ever happens
// synchronously on one goroutine during resolution of one item (§5, §9).
type lazyState int

const (
	pending lazyState = iota
	forcing
	done
)

// lazyVar is a suspension that, when forced with the current environment,
// produces a context variable or fails. A reentrant force — the bound
// sought again while its own force is still in progress — is detected via
// the forcing state and reported as CyclicType; the cell is left
// un-initialised so a later independent attempt can retry.
type lazyVar struct {
	name   string
	sp     span.Span
	upper  ast.Type
	state  lazyState
	result *types.CtxVar
	err    error
}

func (l *lazyVar) force(env *Env) (*types.CtxVar, error) {
	switch l.state {
	case done:
		return l.result, l.err
	case forcing:
		return nil, &errtrace.Error{Kind: errtrace.CyclicType, Sp: l.sp, Name: l.name}
	}

	l.state = forcing
	var upper *types.Type
	if l.upper != nil {
		t, err := env.Resolve(l.upper, l.sp)
		if err != nil {
			l.state = pending
			return nil, err
		}
		upper = &t
	}
	v := &types.CtxVar{Name: l.name, Upper: upper}
	l.state = done
	l.result = v
	return v, nil
}

// ResolveParam resolves a single declaration-site type parameter's bound in
// the surrounding environment (no sibling LazyVars participate); used when a
// type parameter stands alone, with no co-declared siblings that might
// reference it.
func (e *Env) ResolveParam(tp *ast.TypeParam) (*types.CtxVar, error) {
	var upper *types.Type
	if tp.Upper != nil {
		t, err := e.Resolve(tp.Upper, tp.Span())
		if err != nil {
			return nil, err
		}
		upper = &t
	}
	return &types.CtxVar{Name: tp.Name, Variance: variance(tp.Variance), Upper: upper}, nil
}

// DefineTypeParams resolves a co-declared list of type parameters (an
// aggregate's or function's <...> clause) together: each parameter's bound
// is resolved against a child scope in which every sibling is pre-bound as
// a LazyRef, so a bound that refers to a sibling triggers that sibling's own
// force — and a cycle among the bounds is caught as CyclicType on whichever
// parameter is forced first, rather than infinite-looping. Returns the
// child scope (with every parameter now bound to its resolved VarRef) and
// the resolved CtxVars in declaration order.
func DefineTypeParams(env *Env, params []*ast.TypeParam) (*Env, []*types.CtxVar, []error) {
	child := env.Child()
	lazies := make([]*lazyVar, len(params))
	for i, tp := range params {
		lz := &lazyVar{name: tp.Name, sp: tp.Span(), upper: tp.Upper}
		lazies[i] = lz
		child.Define(tp.Name, LazyRef{lazy: lz})
	}

	vars := make([]*types.CtxVar, len(params))
	var errs []error
	for i, tp := range params {
		v, err := lazies[i].force(child)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		v.Variance = variance(tp.Variance)
		vars[i] = v
		child.Define(tp.Name, VarRef{Var: v})
	}
	return child, vars, errs
}

func variance(v ast.Variance) types.Variance {
	switch v {
	case ast.Covariant:
		return types.Covariant
	case ast.Contravariant:
		return types.Contravariant
	default:
		return types.Invariant
	}
}
