package symbols

import "testing"

func TestQueryWalksInnermostScopeOutwardPreservingShadowOrder(t *testing.T) {
	outer := New()
	outer.Register("Foo", nil)
	inner := outer.Child()
	inner.Register("Foo", nil)

	var names []int
	for e := range inner.Query("Foo") {
		names = append(names, e.Idx)
	}
	if len(names) != 2 || names[0] != 1 || names[1] != 0 {
		t.Fatalf("expected inner match (idx 1) before outer match (idx 0), got %v", names)
	}
}

func TestQueryIsRestartable(t *testing.T) {
	ix := New()
	ix.Register("Bar", nil)
	ix.Register("Bar", nil)

	first := collect(ix.Query("Bar"))
	second := collect(ix.Query("Bar"))
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected two matches both times, got %v and %v", first, second)
	}
	if first[0] != second[0] || first[1] != second[1] {
		t.Fatalf("restarted query produced a different sequence: %v vs %v", first, second)
	}
}

func TestPopReturnsTopmostLayerAndLeavesParentUntouched(t *testing.T) {
	outer := New()
	outer.Register("Baz", nil)
	child := outer.Child()
	child.Register("Baz", nil)

	layer, parent := child.Pop()
	if len(layer["Baz"]) != 1 {
		t.Fatalf("expected popped layer to contain just the child's own registration, got %v", layer)
	}
	if parent != outer {
		t.Fatal("expected Pop to return the original parent")
	}
	if got := collect(outer.Query("Baz")); len(got) != 1 {
		t.Fatalf("parent scope must be unaffected by the child's registration, got %v", got)
	}
}

func collect(seq func(func(*FunctionEntry) bool)) []int {
	var out []int
	for e := range seq {
		out = append(out, e.Idx)
	}
	return out
}
