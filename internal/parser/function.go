package parser

import (
	"strings"

	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

// def move_home():
// def pick(pose, speed=0.5):
const functionTemplate = `^\s*def\s+%s\s*\((.*)\)\s*:`

// thread watchdog():
const threadTemplate = `^\s*thread\s+%s\s*\((.*)\)\s*:`

// FunctionMatcher extracts def declarations
type FunctionMatcher struct{}

func (m *FunctionMatcher) Name() string  { return "function" }
func (m *FunctionMatcher) Priority() int { return 90 }

func (m *FunctionMatcher) Match(line string, ctx *ParseContext) *MatchResult {
	return matchCallable(line, ctx, functionTemplate, types.KindFunction)
}

// ThreadMatcher extracts thread declarations
type ThreadMatcher struct{}

func (m *ThreadMatcher) Name() string  { return "thread" }
func (m *ThreadMatcher) Priority() int { return 80 }

func (m *ThreadMatcher) Match(line string, ctx *ParseContext) *MatchResult {
	return matchCallable(line, ctx, threadTemplate, types.KindThread)
}

func matchCallable(line string, ctx *ParseContext, template string, kind types.DeclKind) *MatchResult {
	if !ctx.Filter.Allows(kind) {
		return nil
	}
	idx := ctx.Filter.Pattern(template).FindStringSubmatchIndex(line)
	if idx == nil {
		return nil
	}

	return &MatchResult{
		Decl: &types.Declaration{
			Name:   line[idx[2]:idx[3]],
			Kind:   kind,
			Params: strings.TrimSpace(line[idx[4]:idx[5]]),
			Text:   strings.TrimSpace(line),
			Path:   ctx.Path,
			Line:   ctx.LineNum,
			Column: idx[2],
		},
	}
}
