package parser

import (
	"strings"

	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

// global speed
// global home = p[0, 0, 0.3, 0, 3.14, 0]
const globalTemplate = `^\s*global\s+%s\b(?:\s*=\s*(.*))?`

// name = value lines of a .variables file
const variableTemplate = `^\s*%s\s*=([^=].*)$`

// GlobalMatcher extracts global variable declarations
type GlobalMatcher struct{}

func (m *GlobalMatcher) Name() string  { return "global" }
func (m *GlobalMatcher) Priority() int { return 70 }

func (m *GlobalMatcher) Match(line string, ctx *ParseContext) *MatchResult {
	if !ctx.Filter.Allows(types.KindGlobal) {
		return nil
	}
	idx := ctx.Filter.Pattern(globalTemplate).FindStringSubmatchIndex(line)
	if idx == nil {
		return nil
	}

	var value string
	if idx[4] >= 0 {
		value = strings.TrimSpace(line[idx[4]:idx[5]])
	}
	return &MatchResult{
		Decl: &types.Declaration{
			Name:   line[idx[2]:idx[3]],
			Kind:   types.KindGlobal,
			Value:  value,
			Text:   strings.TrimSpace(line),
			Path:   ctx.Path,
			Line:   ctx.LineNum,
			Column: idx[2],
		},
	}
}

// VariableMatcher extracts entries of variable-definition files
type VariableMatcher struct{}

func (m *VariableMatcher) Name() string  { return "variable" }
func (m *VariableMatcher) Priority() int { return 60 }

func (m *VariableMatcher) Match(line string, ctx *ParseContext) *MatchResult {
	if !ctx.Filter.Allows(types.KindVariable) {
		return nil
	}
	idx := ctx.Filter.Pattern(variableTemplate).FindStringSubmatchIndex(line)
	if idx == nil {
		return nil
	}

	value := strings.TrimSpace(line[idx[4]:idx[5]])
	if value == "" {
		return nil
	}
	return &MatchResult{
		Decl: &types.Declaration{
			Name:   line[idx[2]:idx[3]],
			Kind:   types.KindVariable,
			Value:  value,
			Text:   strings.TrimSpace(line),
			Path:   ctx.Path,
			Line:   ctx.LineNum,
			Column: idx[2],
		},
	}
}
