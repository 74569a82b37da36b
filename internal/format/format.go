// Package format reformats URScript lines without a grammar: it spaces
// bracketed argument lists, operators and keywords, and recomputes
// indentation from block keywords and bracket balance.
package format

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

const DefaultTabSize = 2

// Options controls indentation output
type Options struct {
	TabSize      int
	InsertSpaces bool
}

// DefaultOptions indents with two spaces
func DefaultOptions() Options {
	return Options{TabSize: DefaultTabSize, InsertSpaces: true}
}

func (o Options) indent(width int) string {
	if o.InsertSpaces {
		return strings.Repeat(" ", width)
	}
	return strings.Repeat("\t", width/o.TabSize) + strings.Repeat(" ", width%o.TabSize)
}

func (o Options) normalized() Options {
	if o.TabSize <= 0 {
		o.TabSize = DefaultTabSize
	}
	return o
}

var (
	commentLinePattern = regexp.MustCompile(`^\s*(#|\$)`)
	decreasePattern    = regexp.MustCompile(`^(end\b|elif\b.*:$|else\s*:$)`)
	increasePattern    = regexp.MustCompile(`^(def|thread|while|for|if|elif|else)\b.*:$`)
)

// statement is one non-comment line split into its parts after formatting
type statement struct {
	code    string // formatted code, no surrounding whitespace
	comment string // trailing comment including '#', may be empty
	sep     string // whitespace between code and comment
	state   State
}

func (s statement) String() string {
	switch {
	case s.comment == "":
		return s.code
	case s.code == "":
		return s.comment
	default:
		return s.code + s.sep + s.comment
	}
}

// commentStart returns the index of the first '#' outside a string, or -1
func commentStart(text string) int {
	inQuote := false
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return i
			}
		}
	}
	return -1
}

// formatStatement runs the bracket, sign and keyword passes over the code
// part of text, in that order.
func formatStatement(text string) statement {
	text = strings.TrimSpace(text)
	code := text
	var st statement
	if ci := commentStart(text); ci >= 0 {
		code, st.comment = text[:ci], text[ci:]
	}
	trimmed := strings.TrimRight(code, " \t")
	st.sep = code[len(trimmed):]

	l := &line{text: trimmed}
	for _, p := range bracketPairs {
		st.state |= l.brackets(p)
	}
	l.signs()
	l.keywords()
	st.code = l.text
	return st
}

// FormatRange reformats lines[start..end] inclusive, carrying the indent
// level across the range starting from zero. Each changed line yields one
// edit covering only the bytes that differ.
func FormatRange(lines []string, start, end int, opts Options) []types.TextEdit {
	opts = opts.normalized()
	if start < 0 {
		start = 0
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}

	var edits []types.TextEdit
	indent := 0
	for n := start; n <= end; n++ {
		raw := lines[n]
		if raw == "" {
			continue
		}
		if strings.TrimSpace(raw) == "" {
			edits = append(edits, types.TextEdit{Line: n, StartColumn: 0, EndColumn: len(raw)})
			continue
		}

		var out string
		if commentLinePattern.MatchString(raw) {
			out = opts.indent(indent) + strings.TrimSpace(raw)
		} else {
			st := formatStatement(raw)
			if st.state&ExcessClosed != 0 || decreasePattern.MatchString(st.code) {
				indent = max(indent-opts.TabSize, 0)
			}
			out = opts.indent(indent) + st.String()
			if st.state&Unclosed != 0 || increasePattern.MatchString(st.code) {
				indent += opts.TabSize
			}
		}

		if out != raw {
			edits = append(edits, diffEdit(n, raw, out))
		}
	}
	return edits
}

// FormatLine reformats a single just-completed line. Indentation is kept as
// typed; only brackets, signs, keywords and trailing whitespace change.
func FormatLine(lines []string, n int, opts Options) []types.TextEdit {
	if n < 0 || n >= len(lines) {
		return nil
	}
	raw := lines[n]
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	lead := raw[:len(raw)-len(strings.TrimLeft(raw, " \t"))]
	var out string
	if commentLinePattern.MatchString(raw) {
		out = strings.TrimRight(raw, " \t")
	} else {
		out = lead + formatStatement(raw).String()
	}

	if out == raw {
		return nil
	}
	return []types.TextEdit{diffEdit(n, raw, out)}
}

// FormatText reformats a whole document
func FormatText(text string, opts Options) string {
	lines := strings.Split(text, "\n")
	return strings.Join(ApplyEdits(lines, FormatRange(lines, 0, len(lines)-1, opts)), "\n")
}

// ApplyEdits applies single-line edits and returns the new lines
func ApplyEdits(lines []string, edits []types.TextEdit) []string {
	out := append([]string(nil), lines...)
	sorted := append([]types.TextEdit(nil), edits...)
	// later columns first so earlier offsets stay valid
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Line != sorted[j].Line {
			return sorted[i].Line < sorted[j].Line
		}
		return sorted[i].StartColumn > sorted[j].StartColumn
	})
	for _, e := range sorted {
		if e.Line < 0 || e.Line >= len(out) {
			continue
		}
		l := out[e.Line]
		out[e.Line] = l[:e.StartColumn] + e.NewText + l[e.EndColumn:]
	}
	return out
}

// diffEdit builds the smallest edit turning old into new on line n, with
// both ends on rune boundaries
func diffEdit(n int, old, new string) types.TextEdit {
	p := 0
	for p < len(old) && p < len(new) && old[p] == new[p] {
		p++
	}
	for p > 0 && p < len(old) && !utf8.RuneStart(old[p]) {
		p--
	}
	for p > 0 && p < len(new) && !utf8.RuneStart(new[p]) {
		p--
	}

	s := 0
	for s < len(old)-p && s < len(new)-p && old[len(old)-1-s] == new[len(new)-1-s] {
		s++
	}
	for s > 0 && !utf8.RuneStart(old[len(old)-s]) {
		s--
	}

	return types.TextEdit{
		Line:        n,
		StartColumn: p,
		EndColumn:   len(old) - s,
		NewText:     new[p : len(new)-s],
	}
}
