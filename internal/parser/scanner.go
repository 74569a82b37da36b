package parser

import (
	"strings"

	"github.com/jarredhawkins/urscript-lsp/internal/source"
	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

// MatchFunc receives each accepted declaration together with the window of
// lines that preceded it. Return false to stop scanning.
type MatchFunc func(decl *types.Declaration, win *Window) bool

// Scanner finds declarations line by line
type Scanner struct {
	registry *Registry
}

// NewScanner creates a new scanner with the given registry
func NewScanner(registry *Registry) *Scanner {
	return &Scanner{
		registry: registry,
	}
}

// Scan runs the registry over every line of src. Each call uses its own
// Window, so concurrent scans never share state.
func (s *Scanner) Scan(src source.Source, filter *Filter, fn MatchFunc) error {
	matchers := s.registry.Matchers()
	win := &Window{}
	ctx := &ParseContext{
		Path:   src.Name(),
		Filter: filter,
	}

	return src.Each(func(lineNo int, line string) bool {
		ctx.LineNum = lineNo

		for _, matcher := range matchers {
			result := matcher.Match(line, ctx)
			if result == nil {
				continue
			}
			if !fn(result.Decl, win) {
				return false
			}
			break
		}

		win.Push(strings.TrimSpace(line))
		return true
	})
}

// Declarations collects every declaration accepted by filter
func (s *Scanner) Declarations(src source.Source, filter *Filter) ([]*types.Declaration, error) {
	var decls []*types.Declaration
	err := s.Scan(src, filter, func(decl *types.Declaration, _ *Window) bool {
		decls = append(decls, decl)
		return true
	})
	return decls, err
}

// Doc resolves the doc block attached to decl, if any
func Doc(decl *types.Declaration, win *Window) *types.Method {
	if decl.Kind == types.KindVariable {
		return nil
	}
	return ResolveDoc(decl.Name, decl.Params, win.Lines())
}
