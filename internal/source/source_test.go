package source

import "testing"

func TestPushFrontAndBackAreStable(t *testing.T) {
	m := NewMap()
	a := m.PushBack("a.rs", "one\ntwo\n")
	b := m.PushFront("b.rs", "x")
	c := m.PushBack("c.rs", "y")

	if a != 0 || c != 1 {
		t.Fatalf("expected back ids 0,1 got %d,%d", a, c)
	}
	if b != -1 {
		t.Fatalf("expected front id -1 got %d", b)
	}

	fa, ok := m.Get(a)
	if !ok || fa.Path() != "a.rs" {
		t.Fatalf("Get(a) = %v, %v", fa, ok)
	}
	fb, ok := m.Get(b)
	if !ok || fb.Path() != "b.rs" {
		t.Fatalf("Get(b) = %v, %v", fb, ok)
	}

	// pushing more front entries must not invalidate b's handle
	m.PushFront("d.rs", "z")
	fb2, ok := m.Get(b)
	if !ok || fb2 != fb {
		t.Fatalf("handle for b became unstable after further PushFront")
	}
}

func TestLookupLineColumn(t *testing.T) {
	m := NewMap()
	id := m.PushBack("f.rs", "abc\ndef\nghi")
	f, _ := m.Get(id)

	cases := []struct {
		offset     uint32
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 2, 1},
		{7, 2, 4},
		{8, 3, 1},
	}
	for _, c := range cases {
		line, col := f.Lookup(c.offset)
		if line != c.line || col != c.col {
			t.Errorf("Lookup(%d) = (%d,%d), want (%d,%d)", c.offset, line, col, c.line, c.col)
		}
	}

	if got := f.LineContents(2); got != "def" {
		t.Errorf("LineContents(2) = %q, want %q", got, "def")
	}
	if got := f.LineContents(3); got != "ghi" {
		t.Errorf("LineContents(3) = %q, want %q", got, "ghi")
	}
}

func TestGetMissingReturnsFalse(t *testing.T) {
	m := NewMap()
	if _, ok := m.Get(42); ok {
		t.Fatalf("expected Get on empty map to fail")
	}
}
