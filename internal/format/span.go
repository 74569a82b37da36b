package format

import "strings"

// Tag records which pass claimed a span
type Tag int

const (
	TagBracket Tag = iota
	TagSign
	TagKeyword
)

func (t Tag) String() string {
	switch t {
	case TagBracket:
		return "bracket"
	case TagSign:
		return "sign"
	case TagKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range of the line already rewritten by a pass
type Span struct {
	Start, End int
	Tag        Tag
}

// blocks reports whether s stops a pass tagged t from editing [start, end).
// Bracket spans never block and are never blocked. Sign and keyword spans
// block each other and themselves.
func (s Span) blocks(start, end int, t Tag) bool {
	if s.Tag == TagBracket || t == TagBracket {
		return false
	}
	return start < s.End && s.Start < end
}

// line is the code part of one source line while the passes run over it
type line struct {
	text  string
	spans []Span
}

// claimed reports whether [start, end) overlaps a span that blocks tag t
func (l *line) claimed(start, end int, t Tag) bool {
	for _, s := range l.spans {
		if s.blocks(start, end, t) {
			return true
		}
	}
	return false
}

// quoted reports whether byte i sits inside a double-quoted string
func (l *line) quoted(i int) bool {
	if i < len(l.text) && l.text[i] == '"' {
		return true
	}
	return strings.Count(l.text[:i], `"`)%2 == 1
}

// replace swaps text[start:end] for repl, shifts the spans that follow and
// claims the new text for tag t.
func (l *line) replace(start, end int, repl string, t Tag) {
	delta := len(repl) - (end - start)
	l.text = l.text[:start] + repl + l.text[end:]

	for i := range l.spans {
		s := &l.spans[i]
		switch {
		case s.Start >= end:
			s.Start += delta
			s.End += delta
		case s.End >= end:
			s.End += delta
		case s.End > start:
			s.End = start + len(repl)
		}
	}
	l.spans = append(l.spans, Span{Start: start, End: start + len(repl), Tag: t})
}

// claim records a span without changing the text
func (l *line) claim(start, end int, t Tag) {
	l.spans = append(l.spans, Span{Start: start, End: end, Tag: t})
}

// spaceToken normalizes the whitespace around the token at [start, end) to
// at most one space per side. The whitespace run on either side stops at
// claimed spans. pre and post say whether a space is wanted on that side;
// no space is added at the edges of the code. Returns the end of the token
// and its trailing space after the edit.
func (l *line) spaceToken(start, end int, t Tag, pre, post bool) int {
	ps := start
	for ps > 0 && isSpace(l.text[ps-1]) {
		ps--
	}
	se := end
	for se < len(l.text) && isSpace(l.text[se]) {
		se++
	}
	for _, s := range l.spans {
		if !s.blocks(ps, se, t) {
			continue
		}
		if s.End > ps && s.End <= start {
			ps = s.End
		}
		if s.Start < se && s.Start >= end {
			se = s.Start
		}
	}

	var repl strings.Builder
	if pre && ps > 0 && !isSpace(l.text[ps-1]) {
		repl.WriteByte(' ')
	}
	repl.WriteString(l.text[start:end])
	if post && se < len(l.text) && !isSpace(l.text[se]) {
		repl.WriteByte(' ')
	}

	if l.text[ps:se] == repl.String() {
		l.claim(ps, se, t)
		return se
	}
	l.replace(ps, se, repl.String(), t)
	return ps + repl.Len()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isWord(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
