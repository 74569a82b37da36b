package format

import (
	"regexp"
	"strings"
)

// if(  elif(  while(  gain a space before the parenthesis
var controlCallPattern = regexp.MustCompile(`\b(if|elif|while)\s*\(`)

// boolean operators are spaced like binary signs
var boolWordPattern = regexp.MustCompile(`\b(and|or|not)\b`)

// keywords normalizes spacing around control and boolean keywords
func (l *line) keywords() {
	l.controlCalls()
	l.boolWords()
}

func (l *line) controlCalls() {
	pos := 0
	for pos < len(l.text) {
		loc := controlCallPattern.FindStringSubmatchIndex(l.text[pos:])
		if loc == nil {
			return
		}
		kwStart, kwEnd := pos+loc[2], pos+loc[3]
		paren := pos + loc[1] - 1
		if l.quoted(kwStart) || l.claimed(kwStart, kwEnd, TagKeyword) {
			pos = paren + 1
			continue
		}

		want := l.text[kwStart:kwEnd] + " "
		if l.text[kwStart:paren] != want {
			l.replace(kwStart, paren, want, TagKeyword)
		} else {
			l.claim(kwStart, paren, TagKeyword)
		}
		pos = kwStart + len(want) + 1
	}
}

func (l *line) boolWords() {
	pos := 0
	for pos < len(l.text) {
		loc := boolWordPattern.FindStringIndex(l.text[pos:])
		if loc == nil {
			return
		}
		start, end := pos+loc[0], pos+loc[1]
		if l.quoted(start) || l.claimed(start, end, TagKeyword) {
			pos = end
			continue
		}

		pre := !hasByteBefore(l.text, start, "([")
		post := !hasByteAfter(l.text, end, ")],")
		pos = l.spaceToken(start, end, TagKeyword, pre, post)
	}
}

// hasByteBefore reports whether the first non-space byte before i is one of set
func hasByteBefore(text string, i int, set string) bool {
	for i > 0 && isSpace(text[i-1]) {
		i--
	}
	return i > 0 && strings.IndexByte(set, text[i-1]) >= 0
}

// hasByteAfter reports whether the first non-space byte at or after i is one of set
func hasByteAfter(text string, i int, set string) bool {
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	return i < len(text) && strings.IndexByte(set, text[i]) >= 0
}
