package parser

import (
	"regexp"
	"strings"
)

// SplitArgs splits a parameter or argument list on top-level commas.
// Commas inside double-quoted strings or nested brackets do not split.
// Each piece is trimmed. A blank list yields nil.
func SplitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var (
		parts   []string
		depth   int
		inQuote bool
		last    int
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '(' || c == '[':
			depth++
		case (c == ')' || c == ']') && depth > 0:
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(s[last:i]))
			last = i + 1
		}
	}
	return append(parts, strings.TrimSpace(s[last:]))
}

var defaultArgPattern = regexp.MustCompile(`^(\w+)\s*=\s*(.+)$`)

// ArgName returns the identifier of a parameter, dropping any default
func ArgName(arg string) string {
	if m := defaultArgPattern.FindStringSubmatch(arg); m != nil {
		return m[1]
	}
	return strings.TrimSpace(arg)
}

// DefaultValue finds `name = expr` in a parameter list and returns expr
func DefaultValue(params, name string) string {
	for _, arg := range SplitArgs(params) {
		if m := defaultArgPattern.FindStringSubmatch(arg); m != nil && m[1] == name {
			return strings.TrimSpace(m[2])
		}
	}
	return ""
}
