package parser

import (
	"strings"

	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

// DocSentinel opens and closes a doc block
const DocSentinel = "###"

// ResolveDoc parses the doc block that ends right above a declaration.
//
//	###
//	# get digital input
//	# @param n int the input to read
//	# @returns bool input level
//	###
//	def get_input(n):
//
// lines are the trimmed lines preceding the declaration, oldest first.
// Returns nil unless the last line closes a block that also opens within lines.
func ResolveDoc(name, params string, lines []string) *types.Method {
	end := len(lines) - 1
	if end < 1 || lines[end] != DocSentinel {
		return nil
	}

	start := -1
	for i := end - 1; i >= 0; i-- {
		if lines[i] == DocSentinel {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	m := &types.Method{
		Name:       name,
		ReturnType: string(types.TypeVoid),
	}

	var summary []string
	var sawReturns bool
	for _, raw := range lines[start+1 : end] {
		line := strings.TrimSpace(strings.ReplaceAll(raw, "#", ""))
		switch {
		case strings.HasPrefix(line, "@param"):
			m.Parameters = append(m.Parameters, parseParamDoc(line, params))
		case strings.HasPrefix(line, "@returns"):
			if sawReturns {
				continue
			}
			sawReturns = true
			fields := strings.Fields(strings.TrimPrefix(line, "@returns"))
			if len(fields) > 0 {
				m.ReturnType = string(types.ParseValueType(fields[0]))
				m.Return = strings.Join(fields[1:], " ")
			}
		case strings.HasPrefix(line, "@"):
		case line != "":
			summary = append(summary, line)
		}
	}
	m.Comment = strings.Join(summary, "\n\n")
	return m
}

// parseParamDoc reads "@param name type comment..."
func parseParamDoc(line, params string) types.Parameter {
	fields := strings.Fields(strings.TrimPrefix(line, "@param"))
	var p types.Parameter
	if len(fields) > 0 {
		p.Label = fields[0]
		p.Default = DefaultValue(params, p.Label)
	}
	if len(fields) > 1 {
		p.Type = string(types.ParseValueType(fields[1]))
	} else {
		p.Type = string(types.TypeVoid)
	}
	if len(fields) > 2 {
		p.Comment = strings.Join(fields[2:], " ")
	}
	return p
}
