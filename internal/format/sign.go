package format

import (
	"regexp"
	"slices"
	"strings"
)

// signRule spaces one operator. Rules run longest operator first so that a
// range claimed by "==" is never revisited by "=".
type signRule struct {
	op      string
	exclude func(text string, at int) bool
}

var signRules = []signRule{
	{op: "=="},
	{op: ">="},
	{op: "<="},
	{op: "=>"},
	{op: "=<"},
	{op: "!="},
	{op: ">"},
	{op: "<"},
	{op: "="},
	{op: "++"},
	{op: "+", exclude: unarySign},
	{op: "--"},
	{op: "-", exclude: unarySign},
	{op: "*"},
	{op: "/", exclude: inURL},
}

// keywords after which a sign is unary
var unaryAfterWords = []string{"return", "if", "elif", "while", "and", "or", "not"}

// unarySign reports whether the + or - at text[at] is a sign rather than a
// binary operator: at the start of code, after an opening bracket, a comma,
// another operator or a keyword, or inside an exponent such as 1e-5.
func unarySign(text string, at int) bool {
	if at >= 2 && (text[at-1] == 'e' || text[at-1] == 'E') &&
		(isDigit(text[at-2]) || text[at-2] == '.') &&
		at+1 < len(text) && isDigit(text[at+1]) {
		return true
	}

	j := at - 1
	for j >= 0 && isSpace(text[j]) {
		j--
	}
	if j < 0 {
		return true
	}
	if strings.IndexByte("([,=+-*/<>%:", text[j]) >= 0 {
		return true
	}

	k := j
	for k >= 0 && isWord(text[k]) {
		k--
	}
	return slices.Contains(unaryAfterWords, text[k+1:j+1])
}

var urlPattern = regexp.MustCompile(`https?://\S*`)

// inURL reports whether text[at] is part of an http(s) URL
func inURL(text string, at int) bool {
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		if loc[0] <= at && at < loc[1] {
			return true
		}
	}
	return false
}

// signs puts exactly one space on each side of every binary operator
func (l *line) signs() {
	for _, rule := range signRules {
		pos := 0
		for pos < len(l.text) {
			i := strings.Index(l.text[pos:], rule.op)
			if i < 0 {
				break
			}
			at := pos + i
			end := at + len(rule.op)
			if l.quoted(at) || l.claimed(at, end, TagSign) ||
				(rule.exclude != nil && rule.exclude(l.text, at)) {
				pos = end
				continue
			}
			pos = l.spaceToken(at, end, TagSign, true, true)
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
