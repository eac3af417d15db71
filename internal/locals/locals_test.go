package locals

import (
	"testing"

	"github.com/cindergame/cinderc/internal/span"
	"github.com/cindergame/cinderc/internal/types"
)

func TestIdsAreUniqueAcrossNestedTables(t *testing.T) {
	counter := NewCounter()
	outer := New(counter, 0)
	inner := New(counter, 1)

	a := outer.AddVar(types.App(types.I32), span.Span{})
	b := inner.AddVar(types.App(types.I32), span.Span{})
	c := outer.AddVar(types.App(types.I32), span.Span{})

	seen := map[LocalID]bool{}
	for _, id := range []LocalID{a.ID, b.ID, c.ID} {
		if seen[id] {
			t.Fatalf("duplicate local id %d", id)
		}
		seen[id] = true
	}
	if !(a.ID < b.ID && b.ID < c.ID) {
		t.Fatalf("expected ids minted in increasing order, got %d %d %d", a.ID, b.ID, c.ID)
	}
}

func TestAddParamAndAddVarShareTheCounter(t *testing.T) {
	counter := NewCounter()
	l := New(counter, 0)
	v := l.AddVar(types.App(types.Bool), span.Span{})
	p := l.AddParam(types.App(types.Bool), nil)
	if p.ID != v.ID+1 {
		t.Fatalf("expected param id to follow var id, got var=%d param=%d", v.ID, p.ID)
	}
	if p.Span != nil {
		t.Fatal("expected nil span for a param with no tracked span")
	}
}

func TestCapturePopScopeDecrementsUntilZero(t *testing.T) {
	c := Capture{Local: 7, Depth: 2}
	c, ok := c.PopScope()
	if !ok || c.Depth != 1 {
		t.Fatalf("expected depth 1 after first pop, got %+v ok=%v", c, ok)
	}
	c, ok = c.PopScope()
	if !ok || c.Depth != 0 {
		t.Fatalf("expected depth 0 after second pop, got %+v ok=%v", c, ok)
	}
	_, ok = c.PopScope()
	if ok {
		t.Fatal("popping a depth-0 capture should report it as dropped, not decremented")
	}
}
