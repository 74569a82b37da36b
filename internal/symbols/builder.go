// Package symbols answers completion, hover, signature, definition and
// outline queries against the declarations of a single source.
package symbols

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jarredhawkins/urscript-lsp/internal/parser"
	"github.com/jarredhawkins/urscript-lsp/internal/source"
	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

var commitChars = []string{"\t", " ", "\n"}

// Builder renders scanner matches into query results
type Builder struct {
	scripts   *parser.Scanner
	variables *parser.Scanner
}

// NewBuilder creates a builder for script and variable-definition sources
func NewBuilder() *Builder {
	return &Builder{
		scripts:   parser.NewScanner(parser.NewScriptRegistry()),
		variables: parser.NewScanner(parser.NewVariablesRegistry()),
	}
}

// Completions adds a candidate for every declaration whose name starts
// with keyword. Names already in set are skipped.
func (b *Builder) Completions(src source.Source, keyword string, set *CompletionSet) error {
	return b.scripts.Scan(src, parser.NewFilter(keyword, parser.Prefix), func(d *types.Declaration, win *parser.Window) bool {
		if set.Has(d.Name) {
			return true
		}
		set.Add(completionFor(d, parser.Doc(d, win)))
		return true
	})
}

func completionFor(d *types.Declaration, doc *types.Method) types.Completion {
	c := types.Completion{
		Label:            d.Name,
		CommitCharacters: append([]string(nil), commitChars...),
	}
	if doc != nil {
		c.Documentation = doc.Documentation()
	}

	switch d.Kind {
	case types.KindGlobal:
		c.Kind = types.CompletionVariable
		c.InsertText = d.Name
		c.Detail = "global " + d.Name
	case types.KindThread:
		c.Kind = types.CompletionVariable
		c.InsertText = d.Name + "()"
		c.Detail = "thread " + d.Name
	default:
		c.Kind = types.CompletionFunction
		c.Snippet = true
		if doc != nil {
			// the signature shows up once "(" is typed
			c.Detail = doc.Label()
			c.InsertText = d.Name
			c.CommitCharacters = append(c.CommitCharacters, "(")
			break
		}
		args := parser.SplitArgs(d.Params)
		c.Detail = d.Name + "(" + strings.Join(args, ", ") + ")"
		placeholders := make([]string, len(args))
		for i, a := range args {
			placeholders[i] = fmt.Sprintf("${%d:%s}", i+1, escapeSnippet(a))
		}
		c.InsertText = d.Name + "(" + strings.Join(placeholders, ", ") + ")$0"
	}
	return c
}

// Hover returns tooltip content for the first declaration named name
func (b *Builder) Hover(src source.Source, name string) (*types.Hover, error) {
	var hov *types.Hover
	err := b.scripts.Scan(src, parser.NewFilter(name, parser.Exact), func(d *types.Declaration, win *parser.Window) bool {
		hov = hoverFor(d, parser.Doc(d, win))
		return false
	})
	return hov, err
}

func hoverFor(d *types.Declaration, doc *types.Method) *types.Hover {
	h := &types.Hover{}
	switch d.Kind {
	case types.KindGlobal:
		h.Sections = append(h.Sections, types.HoverSection{Code: "global " + d.Name})
	case types.KindThread:
		h.Sections = append(h.Sections, types.HoverSection{Code: "thread " + d.Name})
	default:
		if doc != nil {
			h.Sections = append(h.Sections, types.HoverSection{Code: doc.Label()})
			break
		}
		h.Sections = append(h.Sections,
			types.HoverSection{Markdown: "*user function*"},
			types.HoverSection{Markdown: d.Name + "(" + strings.Join(parser.SplitArgs(d.Params), ", ") + ")"},
		)
	}
	if doc != nil {
		h.Sections = append(h.Sections, types.HoverSection{Markdown: doc.Documentation()})
	}
	return h
}

// Signature returns the signature of the first documented def named name.
// Undocumented functions never produce a signature.
func (b *Builder) Signature(src source.Source, name string) (*types.Signature, error) {
	var sig *types.Signature
	filter := parser.NewFilter(name, parser.Exact, types.KindFunction)
	err := b.scripts.Scan(src, filter, func(d *types.Declaration, win *parser.Window) bool {
		if doc := parser.Doc(d, win); doc != nil {
			sig = types.SignatureOf(doc)
			return false
		}
		return true
	})
	return sig, err
}

// Definitions returns the identifier location of every declaration named name
func (b *Builder) Definitions(src source.Source, name string) ([]types.Location, error) {
	return definitions(b.scripts, src, name)
}

// Outline lists every def and thread in src
func (b *Builder) Outline(src source.Source) ([]types.OutlineEntry, error) {
	var entries []types.OutlineEntry
	filter := parser.NewFilter("", parser.Prefix, types.KindFunction, types.KindThread)
	err := b.scripts.Scan(src, filter, func(d *types.Declaration, _ *parser.Window) bool {
		entries = append(entries, types.OutlineEntry{
			Name:      d.Name,
			Detail:    d.Name + "(" + d.Params + ")",
			Kind:      d.Kind,
			Line:      d.Line,
			Column:    d.Column,
			EndColumn: d.Column + len(d.Name),
		})
		return true
	})
	return entries, err
}

// VariableCompletions adds a candidate for every name = value entry whose
// name starts with keyword
func (b *Builder) VariableCompletions(src source.Source, keyword string, set *CompletionSet) error {
	file := filepath.Base(src.Name())
	return b.variables.Scan(src, parser.NewFilter(keyword, parser.Prefix), func(d *types.Declaration, _ *parser.Window) bool {
		set.Add(types.Completion{
			Label:            d.Name,
			Kind:             types.CompletionVariable,
			Detail:           d.Name,
			InsertText:       d.Name,
			Documentation:    fmt.Sprintf("*%s*\n\n%s = `%s`", file, d.Name, d.Value),
			CommitCharacters: append([]string(nil), commitChars...),
		})
		return true
	})
}

// VariableHover returns tooltip content for the first entry named name
func (b *Builder) VariableHover(src source.Source, name string) (*types.Hover, error) {
	file := filepath.Base(src.Name())
	var hov *types.Hover
	err := b.variables.Scan(src, parser.NewFilter(name, parser.Exact), func(d *types.Declaration, _ *parser.Window) bool {
		hov = &types.Hover{Sections: []types.HoverSection{
			{Markdown: "*" + file + "*"},
			{Code: "global " + d.Name + " = " + d.Value},
		}}
		return false
	})
	return hov, err
}

// VariableDefinitions returns the location of every entry named name
func (b *Builder) VariableDefinitions(src source.Source, name string) ([]types.Location, error) {
	return definitions(b.variables, src, name)
}

func definitions(s *parser.Scanner, src source.Source, name string) ([]types.Location, error) {
	var locs []types.Location
	err := s.Scan(src, parser.NewFilter(name, parser.Exact), func(d *types.Declaration, _ *parser.Window) bool {
		locs = append(locs, d.Location())
		return true
	})
	return locs, err
}

// escapeSnippet escapes characters with meaning inside snippet placeholders
func escapeSnippet(s string) string {
	return strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`).Replace(s)
}
