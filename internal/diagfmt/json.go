package diagfmt

import (
	"encoding/json"
	"io"

	"zinc/internal/diag"
	"zinc/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   bool             `json:"truncated,omitempty"`
}

// WriteJSON serializes the bag as one indented JSON document. Count always
// reflects the full bag even when Max truncates the list.
func WriteJSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	if bag != nil {
		items := bag.Items()
		out.Count = len(items)
		if opts.Max > 0 && len(items) > opts.Max {
			items = items[:opts.Max]
			out.Truncated = true
		}
		for _, d := range items {
			dj := DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.String(),
				Message:  d.Message,
				Location: makeLocation(d.Primary, fs, opts),
			}
			if opts.IncludeNotes {
				for _, n := range d.Notes {
					dj.Notes = append(dj.Notes, NoteJSON{
						Message:  n.Msg,
						Location: makeLocation(n.Span, fs, opts),
					})
				}
			}
			out.Diagnostics = append(out.Diagnostics, dj)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	if fs == nil {
		return loc
	}
	f := fs.Get(span.File)
	if f == nil {
		return loc
	}
	loc.File = formatPath(f.Path, opts.PathMode)
	if opts.IncludePositions {
		start, end := fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}
