// Package analysis answers editor queries by consulting the built-in
// catalog, then the open document, then the rest of the workspace.
package analysis

import (
	"log"
	"strings"
	"sync"

	"github.com/jarredhawkins/urscript-lsp/internal/catalog"
	"github.com/jarredhawkins/urscript-lsp/internal/config"
	"github.com/jarredhawkins/urscript-lsp/internal/format"
	"github.com/jarredhawkins/urscript-lsp/internal/source"
	"github.com/jarredhawkins/urscript-lsp/internal/symbols"
	"github.com/jarredhawkins/urscript-lsp/internal/types"
	"github.com/jarredhawkins/urscript-lsp/internal/workspace"
)

var catalogCommitChars = []string{"(", ")", ":", "\t", "\n", " "}

// CompletionList is the result of a completion query. Incomplete asks the
// editor to query again as the word grows.
type CompletionList struct {
	Items      []types.Completion `json:"items"`
	Incomplete bool               `json:"incomplete"`
}

// Analyzer is safe for concurrent use. Configuration and catalog can be
// swapped with Reload while queries run.
type Analyzer struct {
	root    string
	builder *symbols.Builder

	mu       sync.RWMutex
	cfg      *config.Config
	catalog  *catalog.Catalog
	searcher *workspace.Searcher
}

// New creates an analyzer for the workspace at root. An empty root disables
// workspace queries.
func New(root string, cfg *config.Config, cat *catalog.Catalog) *Analyzer {
	a := &Analyzer{root: root, builder: symbols.NewBuilder()}
	a.Reload(cfg, cat)
	return a
}

// Reload replaces configuration and catalog
func (a *Analyzer) Reload(cfg *config.Config, cat *catalog.Catalog) {
	if cfg == nil {
		cfg = config.Default()
	}
	var searcher *workspace.Searcher
	if a.root != "" {
		searcher = workspace.NewSearcher(cfg.Walker(a.root), a.builder, cfg.StreamThreshold, cfg.ChunkSize)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg
	a.catalog = cat
	a.searcher = searcher
}

// Root returns the workspace root
func (a *Analyzer) Root() string {
	return a.root
}

// Config returns the active configuration
func (a *Analyzer) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// Catalog returns the active catalog
func (a *Analyzer) Catalog() *catalog.Catalog {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.catalog
}

func (a *Analyzer) snapshot() (*catalog.Catalog, *workspace.Searcher) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.catalog, a.searcher
}

// Completions returns candidates for the cursor at byte column col
func (a *Analyzer) Completions(doc *source.Buffer, line, col int) *CompletionList {
	text := doc.Line(line)
	if col > len(text) {
		col = len(text)
	}

	word := wordBefore(text, col)
	if word == "" {
		word = strings.TrimLeft(text[:col], " \t")
	}

	switch {
	case strings.TrimSpace(word) == "":
		return nil
	case strings.HasPrefix(word, "#"):
		next := doc.Line(line + 1)
		if line+1 >= doc.Len() || strings.TrimSpace(next) == "" {
			return nil
		}
		item := docBlockSnippet(next)
		item.Replace = &types.TextEdit{Line: line, StartColumn: col - len(word), EndColumn: col}
		return &CompletionList{Items: []types.Completion{item}}
	case strings.HasPrefix(word, "@"):
		items := tagSnippets()
		for i := range items {
			items[i].Replace = &types.TextEdit{Line: line, StartColumn: col - len(word), EndColumn: col}
		}
		return &CompletionList{Items: items}
	case !isWordByte(word[len(word)-1]):
		return nil
	}

	cat, searcher := a.snapshot()
	set := symbols.NewCompletionSet()
	for _, m := range cat.WithPrefix(word) {
		set.Add(types.Completion{
			Label:            m.Name,
			Kind:             types.CompletionMethod,
			Detail:           m.Label(),
			Documentation:    m.Documentation(),
			InsertText:       m.Name,
			CommitCharacters: append([]string(nil), catalogCommitChars...),
		})
	}
	if err := a.builder.Completions(doc, word, set); err != nil {
		log.Printf("completion in %s: %v", doc.Name(), err)
	}
	if searcher != nil {
		if err := searcher.Completions(word, doc.Name(), set); err != nil {
			log.Printf("workspace completion for %q: %v", word, err)
		}
	}

	return &CompletionList{Items: set.Items(), Incomplete: len(word) <= 1}
}

// Hover returns tooltip content for the word at byte column col
func (a *Analyzer) Hover(doc *source.Buffer, line, col int) *types.Hover {
	word, _ := WordAt(doc.Line(line), col)
	if word == "" {
		return nil
	}
	return a.HoverName(doc, word)
}

// HoverName returns tooltip content for name. doc may be nil.
func (a *Analyzer) HoverName(doc *source.Buffer, name string) *types.Hover {
	cat, searcher := a.snapshot()
	if m := cat.Lookup(name); m != nil {
		return &types.Hover{Sections: []types.HoverSection{
			{Code: m.Label()},
			{Markdown: m.Documentation()},
		}}
	}

	exclude := ""
	if doc != nil {
		exclude = doc.Name()
		h, err := a.builder.Hover(doc, name)
		if err != nil {
			log.Printf("hover in %s: %v", doc.Name(), err)
		}
		if h != nil {
			return h
		}
	}

	if searcher != nil {
		h, err := searcher.Hover(name, exclude)
		if err != nil {
			log.Printf("workspace hover for %q: %v", name, err)
		}
		return h
	}
	return nil
}

// Signature returns signature help for the call enclosing byte column col
func (a *Analyzer) Signature(doc *source.Buffer, line, col int) *types.Signature {
	name, active, ok := callAt(doc.Line(line), col)
	if !ok {
		return nil
	}

	sig := a.signature(doc, name)
	if sig == nil {
		return nil
	}
	sig.ActiveParameter = active
	return sig
}

func (a *Analyzer) signature(doc *source.Buffer, name string) *types.Signature {
	cat, searcher := a.snapshot()
	if m := cat.Lookup(name); m != nil {
		return types.SignatureOf(m)
	}

	sig, err := a.builder.Signature(doc, name)
	if err != nil {
		log.Printf("signature in %s: %v", doc.Name(), err)
	}
	if sig != nil || searcher == nil {
		return sig
	}

	sig, err = searcher.Signature(name, doc.Name())
	if err != nil {
		log.Printf("workspace signature for %q: %v", name, err)
	}
	return sig
}

// Definitions returns declaration locations for the word at byte column col
func (a *Analyzer) Definitions(doc *source.Buffer, line, col int) []types.Location {
	word, _ := WordAt(doc.Line(line), col)
	if word == "" {
		return nil
	}
	return a.DefinitionsOf(doc, word)
}

// DefinitionsOf returns declaration locations for name. The document is
// searched first; the workspace only when the document has none. doc may be
// nil.
func (a *Analyzer) DefinitionsOf(doc *source.Buffer, name string) []types.Location {
	exclude := ""
	if doc != nil {
		exclude = doc.Name()
		locs, err := a.builder.Definitions(doc, name)
		if err != nil {
			log.Printf("definition in %s: %v", doc.Name(), err)
		}
		if len(locs) > 0 {
			return locs
		}
	}

	_, searcher := a.snapshot()
	if searcher == nil {
		return nil
	}
	locs, err := searcher.Definitions(name, exclude)
	if err != nil {
		log.Printf("workspace definition for %q: %v", name, err)
	}
	return locs
}

// Outline lists the functions and threads of doc
func (a *Analyzer) Outline(doc source.Source) []types.OutlineEntry {
	entries, err := a.builder.Outline(doc)
	if err != nil {
		log.Printf("outline of %s: %v", doc.Name(), err)
	}
	return entries
}

// FormatOptions returns the configured formatter settings
func (a *Analyzer) FormatOptions() format.Options {
	return a.Config().FormatOptions()
}

// FormatDocument reformats every line of doc
func (a *Analyzer) FormatDocument(doc *source.Buffer, opts format.Options) []types.TextEdit {
	return format.FormatRange(doc.Lines(), 0, doc.Len()-1, opts)
}

// FormatRange reformats lines start through end inclusive
func (a *Analyzer) FormatRange(doc *source.Buffer, start, end int, opts format.Options) []types.TextEdit {
	return format.FormatRange(doc.Lines(), start, end, opts)
}

// FormatOnType reformats the line just completed by typing ch at line.
// A newline finishes the previous line.
func (a *Analyzer) FormatOnType(doc *source.Buffer, line int, ch string, opts format.Options) []types.TextEdit {
	if ch == "\n" {
		line--
	}
	return format.FormatLine(doc.Lines(), line, opts)
}
