package parser

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

// MatchMode selects how a Filter compares names
type MatchMode int

const (
	// Prefix accepts names starting with the keyword, ignoring case
	Prefix MatchMode = iota
	// Exact accepts only the keyword itself, case-sensitively
	Exact
)

// Filter scopes declaration patterns to a keyword. It caches compiled
// patterns and is meant to live for a single query.
type Filter struct {
	Keyword string
	Mode    MatchMode
	Kinds   []types.DeclKind // empty means every kind

	compiled map[string]*regexp.Regexp
}

// NewFilter creates a filter for keyword
func NewFilter(keyword string, mode MatchMode, kinds ...types.DeclKind) *Filter {
	return &Filter{Keyword: keyword, Mode: mode, Kinds: kinds}
}

// All matches every declaration
func All() *Filter {
	return NewFilter("", Prefix)
}

// Allows reports whether kind passes the kind restriction
func (f *Filter) Allows(kind types.DeclKind) bool {
	return len(f.Kinds) == 0 || slices.Contains(f.Kinds, kind)
}

// name returns the capture group that matches an accepted identifier
func (f *Filter) name() string {
	kw := regexp.QuoteMeta(f.Keyword)
	switch {
	case f.Keyword == "":
		return `(\w+)`
	case f.Mode == Exact:
		return `(` + kw + `)`
	default:
		return `((?i:` + kw + `)\w*)`
	}
}

// Pattern compiles template with %s replaced by the name group
func (f *Filter) Pattern(template string) *regexp.Regexp {
	if re, ok := f.compiled[template]; ok {
		return re
	}
	if f.compiled == nil {
		f.compiled = make(map[string]*regexp.Regexp)
	}
	re := regexp.MustCompile(fmt.Sprintf(template, f.name()))
	f.compiled[template] = re
	return re
}
