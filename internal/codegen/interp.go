package codegen

import "strings"

// splitInterp breaks an interpolated string into a format string and the
// interpolated expression texts. It reports false for plain strings.
// Expression texts are spliced as written in the source; identifiers keep
// their names in the generated code, so this is sound for the variable
// and field references interpolation is used for.
func splitInterp(s string) (string, []string, bool) {
	if !strings.ContainsRune(s, '{') {
		return "", nil, false
	}
	var format strings.Builder
	var args []string
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			format.WriteString(rustEscape(s))
			break
		}
		end := strings.IndexByte(s[open:], '}')
		if end < 0 {
			format.WriteString(rustEscape(s))
			break
		}
		format.WriteString(rustEscape(s[:open]))
		expr := s[open+1 : open+end]
		if strings.TrimSpace(expr) == "" {
			// Bare braces carry no expression; keep them literal in the
			// format string instead of producing a dangling argument.
			format.WriteString("{{")
			format.WriteString(rustEscape(expr))
			format.WriteString("}}")
		} else {
			format.WriteString("{}")
			args = append(args, expr)
		}
		s = s[open+end+1:]
	}
	if len(args) == 0 {
		return "", nil, false
	}
	return format.String(), args, true
}

// formatEscape prepares a plain string for use inside a Rust format
// macro, doubling braces on top of the usual literal escapes.
func formatEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '{':
			b.WriteString("{{")
		case '}':
			b.WriteString("}}")
		default:
			b.WriteString(rustEscape(string(r)))
		}
	}
	return b.String()
}

// rustEscape re-escapes a decoded string value for emission inside a
// Rust string literal.
func rustEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
