package errtrace

import (
	"strings"
	"testing"

	"github.com/cindergame/cinderc/internal/source"
	"github.com/cindergame/cinderc/internal/span"
)

func TestCodeAndFatalityMatchTheTaxonomyTable(t *testing.T) {
	cases := []struct {
		kind  Kind
		code  string
		fatal bool
	}{
		{UnresolvedVar, "UNRESOLVED_REF", true},
		{CyclicType, "CYCLIC_TYPE", true},
		{DeprecatedNameOf, "DEPRECATED_SYNTAX", false},
		{MissingBreakInCaseLet, "MISSING_BREAK", true},
	}
	for _, c := range cases {
		e := &Error{Kind: c.kind}
		if e.Code() != c.code {
			t.Errorf("%v: expected code %s, got %s", c.kind, c.code, e.Code())
		}
		if e.IsFatal() != c.fatal {
			t.Errorf("%v: expected fatal=%v, got %v", c.kind, c.fatal, e.IsFatal())
		}
	}
}

func TestOnlyDeprecatedNameOfIsNonFatal(t *testing.T) {
	for k := UnresolvedVar; k <= TypeNested; k++ {
		e := &Error{Kind: k}
		if !e.IsFatal() && k != DeprecatedNameOf {
			t.Errorf("kind %v unexpectedly non-fatal", k)
		}
	}
}

func TestLiteralOutOfRangeIncludesRangeHint(t *testing.T) {
	e := &Error{Kind: LiteralOutOfRange, TypeName: "uint8"}
	msg := e.Error()
	if !strings.Contains(msg, "0 and 255") {
		t.Fatalf("expected uint8 range hint, got %q", msg)
	}
}

func TestInvalidArgCountRendersSingleOrRange(t *testing.T) {
	single := (&Error{Kind: InvalidArgCount, Name: "f", Min: 2, Max: 2, HaveN: 1}).Error()
	if !strings.Contains(single, "2 argument(s)") {
		t.Fatalf("expected single-count rendering, got %q", single)
	}
	ranged := (&Error{Kind: InvalidArgCount, Name: "g", Min: 1, Max: 3, HaveN: 0}).Error()
	if !strings.Contains(ranged, "between 1 and 3") {
		t.Fatalf("expected ranged rendering, got %q", ranged)
	}
}

func TestFormatRendersCaretAtReportedColumn(t *testing.T) {
	sm := source.NewMap()
	fid := sm.PushBack("main.script", "let x = 1\nlet y = frobnicate\n")
	sp := span.New(fid, 11, 21) // a region inside line 2 ("et y = fro")
	out := Format(sm, sp, "cannot find \"frobnicate\" in this scope")
	if !strings.Contains(out, "main.script:2:") {
		t.Fatalf("expected a path:line:col header, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected a caret indicator, got %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Fatalf("plain Format must never emit ANSI escapes, got %q", out)
	}
}

func TestFormatAllCountsMultipleErrors(t *testing.T) {
	sm := source.NewMap()
	fid := sm.PushBack("m.script", "a\nb\n")
	errs := []*Error{
		{Kind: UnresolvedVar, Sp: span.New(fid, 0, 1), Name: "a"},
		{Kind: UnresolvedVar, Sp: span.New(fid, 2, 3), Name: "b"},
	}
	out := FormatAll(sm, errs)
	if !strings.Contains(out, "2 error(s)") {
		t.Fatalf("expected a count header, got %q", out)
	}
}
