package errtrace

import (
	"fmt"
	"strings"

	"github.com/cindergame/cinderc/internal/source"
	"github.com/cindergame/cinderc/internal/span"
)

// Format renders one diagnostic with a caret pointing at its column, in the
// style of "path:line:col" followed by the source line and message. Unlike
// the teacher's CompilerError.Format, this never emits ANSI color codes:
// colorized/terminal rendering is a feature this module does not provide,
// but the plain structured rendering itself is the ambient "structured
// errors" concern and is kept.
func Format(sm *source.Map, sp span.Span, message string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", sm.DisplayAt(sp), message)

	f, ok := sm.Get(sp.File)
	if !ok {
		return sb.String()
	}
	line, col := f.Lookup(sp.Start)
	src := f.LineContents(line)
	if src == "" {
		return sb.String()
	}
	lineNumStr := fmt.Sprintf("%4d | ", line)
	sb.WriteString(lineNumStr)
	sb.WriteString(src)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
	sb.WriteString("^\n")
	return sb.String()
}

// FormatAll renders a batch of diagnostics, each via Format, separated and
// counted the way the teacher's FormatErrors does for multi-error output.
func FormatAll(sm *source.Map, errs []*Error) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return Format(sm, errs[0].Span(), errs[0].Error())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "lowering failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[error %d of %d]\n", i+1, len(errs))
		sb.WriteString(Format(sm, e.Span(), e.Error()))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
