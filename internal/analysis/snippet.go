package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jarredhawkins/urscript-lsp/internal/parser"
	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

var (
	defLinePattern    = regexp.MustCompile(`^def\b`)
	firstParamPattern = regexp.MustCompile(`\((.*?)\)`)
)

// docBlockSnippet builds the ### block offered when '#' is typed above a
// line. A def below gets one @param line per parameter.
func docBlockSnippet(next string) types.Completion {
	c := types.Completion{
		Label:            parser.DocSentinel,
		Kind:             types.CompletionSnippet,
		Documentation:    "\n###\n# your comments\n###\n",
		InsertText:       "###\n# ${0}\n###",
		Snippet:          true,
		CommitCharacters: []string{"\n", "\t"},
	}

	next = strings.TrimSpace(next)
	if !defLinePattern.MatchString(next) {
		return c
	}
	m := firstParamPattern.FindStringSubmatch(next)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return c
	}

	choices := strings.Join(types.TypeNames, ",")
	index := 2
	var lines []string
	for _, arg := range strings.Split(m[1], ",") {
		name := parser.ArgName(strings.TrimSpace(arg))
		lines = append(lines, fmt.Sprintf("# @param %s ${%d|%s|} ${%d:%s}", name, index, choices, index+1, name))
		index += 2
	}
	c.InsertText = "###\n# ${1:summary}\n" + strings.Join(lines, "\n") + "\n###"
	return c
}

// tagSnippets are offered when '@' is typed inside a doc block
func tagSnippets() []types.Completion {
	choices := strings.Join(types.TypeNames, ",")
	commit := []string{"\n", "\t", " "}
	return []types.Completion{
		{
			Label:            "@param",
			Kind:             types.CompletionSnippet,
			Documentation:    "@param `name` `type` your comments",
			InsertText:       "# @param ${1:name} ${2|" + choices + "|} ${0:comments}",
			Snippet:          true,
			CommitCharacters: commit,
		},
		{
			Label:            "@returns",
			Kind:             types.CompletionSnippet,
			Documentation:    "@returns `type` your comments",
			InsertText:       "# @returns ${1|void," + choices + "|} ${0:comments}",
			Snippet:          true,
			CommitCharacters: append([]string(nil), commit...),
		},
	}
}
