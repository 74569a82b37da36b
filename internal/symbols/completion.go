package symbols

import "github.com/jarredhawkins/urscript-lsp/internal/types"

// CompletionSet accumulates completion candidates, keeping the first
// candidate seen for each label. The zero value is ready to use.
type CompletionSet struct {
	items []types.Completion
	seen  map[string]struct{}
}

// NewCompletionSet creates an empty set
func NewCompletionSet() *CompletionSet {
	return &CompletionSet{seen: make(map[string]struct{})}
}

// Add appends c unless a candidate with the same label exists
func (s *CompletionSet) Add(c types.Completion) bool {
	if _, ok := s.seen[c.Label]; ok {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	s.seen[c.Label] = struct{}{}
	s.items = append(s.items, c)
	return true
}

// Has reports whether label is already present
func (s *CompletionSet) Has(label string) bool {
	_, ok := s.seen[label]
	return ok
}

// Items returns the candidates in insertion order
func (s *CompletionSet) Items() []types.Completion {
	return s.items
}

// Len returns the number of candidates
func (s *CompletionSet) Len() int {
	return len(s.items)
}
