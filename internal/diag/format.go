package diag

import (
	"fmt"
	"strings"

	"zinc/internal/source"
)

// FormatShort renders diagnostics one per line in a stable form suitable for
// CLI output and golden comparisons:
//
//	<path>:<line>:<col>: <SEVERITY> <Code>: <message>
func FormatShort(bag *Bag, fs *source.FileSet, includeNotes bool) string {
	if bag == nil || bag.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for _, d := range bag.Items() {
		writeLine(&sb, fs, d.Severity.String(), d.Code.String(), d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			writeLine(&sb, fs, "NOTE", "", n.Span, n.Msg)
		}
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, fs *source.FileSet, sev, code string, span source.Span, msg string) {
	path := "<unknown>"
	line, col := uint32(0), uint32(0)
	if fs != nil {
		if f := fs.Get(span.File); f != nil {
			path = f.Path
			start, _ := fs.Resolve(span)
			line, col = start.Line, start.Col
		}
	}
	if code != "" {
		fmt.Fprintf(sb, "%s:%d:%d: %s %s: %s\n", path, line, col, sev, code, msg)
		return
	}
	fmt.Fprintf(sb, "%s:%d:%d: %s: %s\n", path, line, col, sev, msg)
}
