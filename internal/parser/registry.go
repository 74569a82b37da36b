package parser

import (
	"sort"

	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

// ParseContext provides context for matching
type ParseContext struct {
	Path    string  // file path or buffer name of the source being scanned
	LineNum int     // Current line number (0-indexed)
	Filter  *Filter // name filter for this query
}

// MatchResult contains the declaration extracted from a line
type MatchResult struct {
	Decl *types.Declaration
}

// Matcher defines how to recognize one declaration form
type Matcher interface {
	// Name returns plugin identifier
	Name() string

	// Match tests if line declares a name accepted by ctx.Filter
	// Returns nil if no match
	Match(line string, ctx *ParseContext) *MatchResult

	// Priority for ordering (higher = earlier)
	Priority() int
}

// Registry holds all registered matchers
type Registry struct {
	matchers []Matcher
	sorted   bool
}

// NewRegistry creates a new empty registry
func NewRegistry() *Registry {
	return &Registry{
		matchers: make([]Matcher, 0),
	}
}

// Register adds a matcher to the registry
func (r *Registry) Register(m Matcher) {
	r.matchers = append(r.matchers, m)
	r.sorted = false
}

// Matchers returns all registered matchers in priority order
func (r *Registry) Matchers() []Matcher {
	if !r.sorted {
		sort.SliceStable(r.matchers, func(i, j int) bool {
			return r.matchers[i].Priority() > r.matchers[j].Priority()
		})
		r.sorted = true
	}
	return r.matchers
}

// RegisterDefaults adds the script declaration matchers to the registry
func RegisterDefaults(r *Registry) {
	r.Register(&FunctionMatcher{})
	r.Register(&ThreadMatcher{})
	r.Register(&GlobalMatcher{})
}

// NewScriptRegistry returns a registry for .script sources
func NewScriptRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// NewVariablesRegistry returns a registry for .variables sources
func NewVariablesRegistry() *Registry {
	r := NewRegistry()
	r.Register(&VariableMatcher{})
	return r
}
