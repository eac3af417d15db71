package lower

import (
	"testing"

	"github.com/cindergame/cinderc/internal/locals"
	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/symbols"
	"github.com/cindergame/cinderc/internal/typeenv"
	"github.com/cindergame/cinderc/internal/types"
)

func newRootEnv() *Env {
	return New(typeenv.WithDefaultTypes(), symbols.New(), locals.NewCounter())
}

func TestIntroduceScopeSharesLocalsTableNotScopeLayer(t *testing.T) {
	root := newRootEnv()
	root.DefineLocal("x", types.App(types.I32), span.Span{})

	child := root.IntroduceScope()
	if child.Locals != root.Locals {
		t.Fatal("IntroduceScope must keep writing into the same Locals table (same closure depth)")
	}
	if _, _, ok := child.Lookup("x"); !ok {
		t.Fatal("child scope should see parent's locals")
	}

	child.DefineLocal("y", types.App(types.Bool), span.Span{})
	if _, _, ok := root.Lookup("y"); ok {
		t.Fatal("parent scope must not see a name defined only in the child")
	}
}

func TestIntroduceLambdaIncrementsDepthAndCapturesOuterLocal(t *testing.T) {
	root := newRootEnv()
	outer := root.DefineLocal("x", types.App(types.I32), span.Span{})

	lambda := root.IntroduceLambda()
	if lambda.Locals.Depth() != root.Locals.Depth()+1 {
		t.Fatalf("expected lambda depth %d, got %d", root.Locals.Depth()+1, lambda.Locals.Depth())
	}

	cap, ok := lambda.LookupCapture("x")
	if !ok {
		t.Fatal("expected a capture for a name defined one closure level up")
	}
	if cap.Local != outer.ID || cap.Depth != 1 {
		t.Fatalf("expected capture {local=%d depth=1}, got %+v", outer.ID, cap)
	}
}

func TestLookupCaptureIsFalseForSameScopeLocal(t *testing.T) {
	root := newRootEnv()
	root.DefineLocal("x", types.App(types.I32), span.Span{})
	if _, ok := root.LookupCapture("x"); ok {
		t.Fatal("a local defined in the current scope needs no capture")
	}
}

func TestNestedLambdasShareOneIdCounterAcrossDepths(t *testing.T) {
	root := newRootEnv()
	root.DefineLocal("a", types.App(types.I32), span.Span{})
	l1 := root.IntroduceLambda()
	l1.DefineLocal("b", types.App(types.I32), span.Span{})
	l2 := l1.IntroduceLambda()
	c := l2.DefineLocal("c", types.App(types.I32), span.Span{})

	if l2.Locals.Depth() != 2 {
		t.Fatalf("expected depth 2 two lambdas deep, got %d", l2.Locals.Depth())
	}
	if c.ID < 2 {
		t.Fatalf("expected c's id to follow a and b's in one shared counter, got %d", c.ID)
	}
}

func TestQueryFreeFunctionsDelegatesToFuncIndex(t *testing.T) {
	root := newRootEnv()
	root.Funcs.Register("DoThing", nil)
	var got []string
	for e := range root.QueryFreeFunctions("DoThing") {
		got = append(got, e.Name)
	}
	if len(got) != 1 || got[0] != "DoThing" {
		t.Fatalf("expected one DoThing entry, got %v", got)
	}
}
