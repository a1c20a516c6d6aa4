// Package diagfmt renders diagnostics and parse trees for the command line.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"zinc/internal/diag"
	"zinc/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeHeader(w, fs, d.Severity, d.Code.String(), d.Primary, d.Message, opts)
		writePreview(w, fs, d.Primary, opts)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			writeHeader(w, fs, diag.SevInfo, "note", n.Span, n.Msg, opts)
			writePreview(w, fs, n.Span, opts)
		}
	}
}

func writeHeader(w io.Writer, fs *source.FileSet, sev diag.Severity, code string, span source.Span, msg string, opts PrettyOpts) {
	path := "<unknown>"
	line, col := uint32(0), uint32(0)
	if fs != nil {
		if f := fs.Get(span.File); f != nil {
			path = formatPath(f.Path, opts.PathMode)
			start, _ := fs.Resolve(span)
			line, col = start.Line, start.Col
		}
	}
	sevText := sev.String()
	if code == "note" {
		sevText = "NOTE"
		code = ""
	}
	if opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
	}
	if code != "" {
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, line, col, sevText, code, msg)
		return
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, line, col, sevText, msg)
}

// writePreview prints the spanned line with a gutter and a caret underline.
// Spans crossing lines get the caret on the first line only.
func writePreview(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	if fs == nil {
		return
	}
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	if start.Line == 0 {
		return
	}

	first := start.Line
	if opts.Context > 0 {
		low := int(first) - opts.Context
		if low < 1 {
			low = 1
		}
		for ln := uint32(low); ln < first; ln++ {
			fmt.Fprintf(w, "%5d | %s\n", ln, f.GetLine(ln))
		}
	}

	text := f.GetLine(first)
	fmt.Fprintf(w, "%5d | %s\n", first, text)

	startCol := int(start.Col)
	endCol := len(text) + 1
	if end.Line == first && int(end.Col) <= endCol {
		endCol = int(end.Col)
	}
	if startCol > len(text)+1 {
		startCol = len(text) + 1
	}
	pad := runewidth.StringWidth(text[:startCol-1])
	width := runewidth.StringWidth(sliceCols(text, startCol, endCol))
	if width < 1 {
		width = 1
	}
	caret := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		caret = severityColor(diag.SevError).Sprint(caret)
	}
	fmt.Fprintf(w, "      | %s%s\n", strings.Repeat(" ", pad), caret)

	if opts.Context > 0 {
		high := int(first) + opts.Context
		for ln := first + 1; int(ln) <= high && int(ln) <= len(f.LineIdx); ln++ {
			fmt.Fprintf(w, "%5d | %s\n", ln, f.GetLine(ln))
		}
	}
}

func sliceCols(text string, startCol, endCol int) string {
	if startCol < 1 {
		startCol = 1
	}
	if endCol > len(text)+1 {
		endCol = len(text) + 1
	}
	if endCol <= startCol {
		return ""
	}
	return text[startCol-1 : endCol-1]
}

func formatPath(path string, mode PathMode) string {
	if mode == PathModeBasename {
		return filepath.Base(path)
	}
	return path
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
