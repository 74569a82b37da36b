package types

import "strings"

// CompletionKind categorizes completion candidates
type CompletionKind int

const (
	CompletionFunction CompletionKind = iota
	CompletionMethod                  // built-in catalog function
	CompletionVariable
	CompletionSnippet
)

func (k CompletionKind) String() string {
	switch k {
	case CompletionFunction:
		return "function"
	case CompletionMethod:
		return "method"
	case CompletionVariable:
		return "variable"
	case CompletionSnippet:
		return "snippet"
	default:
		return "unknown"
	}
}

// Completion is one completion candidate
type Completion struct {
	Label            string         `json:"label"`
	Kind             CompletionKind `json:"kind"`
	Detail           string         `json:"detail,omitempty"`
	Documentation    string         `json:"documentation,omitempty"` // markdown
	InsertText       string         `json:"insertText,omitempty"`
	Snippet          bool           `json:"snippet,omitempty"` // InsertText uses ${n} placeholders
	CommitCharacters []string       `json:"commitCharacters,omitempty"`
	Replace          *TextEdit      `json:"replace,omitempty"` // when set, NewText replaces this range instead of the word
}

// HoverSection is one block of hover content, either a code line or markdown
type HoverSection struct {
	Code     string `json:"code,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

// Hover is tooltip content for a single symbol
type Hover struct {
	Sections []HoverSection `json:"sections"`
}

// Markdown flattens the sections into one markdown document
func (h *Hover) Markdown() string {
	parts := make([]string, 0, len(h.Sections))
	for _, s := range h.Sections {
		if s.Code != "" {
			parts = append(parts, "```urscript\n"+s.Code+"\n```")
			continue
		}
		if s.Markdown != "" {
			parts = append(parts, s.Markdown)
		}
	}
	return strings.Join(parts, "\n\n")
}

// SignatureParameter is one parameter of a signature
type SignatureParameter struct {
	Label         string `json:"label"`
	Documentation string `json:"documentation,omitempty"`
}

// Signature describes a callable for signature help
type Signature struct {
	Label           string               `json:"label"`
	Documentation   string               `json:"documentation,omitempty"`
	Parameters      []SignatureParameter `json:"parameters"`
	ActiveParameter int                  `json:"activeParameter"`
}

// SignatureOf builds a signature descriptor from a documented method
func SignatureOf(m *Method) *Signature {
	sig := &Signature{
		Label:         m.Label(),
		Documentation: m.Documentation(),
		Parameters:    make([]SignatureParameter, len(m.Parameters)),
	}
	for i, p := range m.Parameters {
		sig.Parameters[i] = SignatureParameter{
			Label:         p.Label,
			Documentation: p.Documentation(),
		}
	}
	return sig
}

// OutlineEntry is a def or thread listed in a document outline
type OutlineEntry struct {
	Name      string   `json:"name"`
	Detail    string   `json:"detail"` // name(params)
	Kind      DeclKind `json:"kind"`
	Line      int      `json:"line"`
	Column    int      `json:"column"`
	EndColumn int      `json:"endColumn"`
}

// TextEdit replaces [StartColumn, EndColumn) on Line with NewText.
// Columns are byte offsets into the original line.
type TextEdit struct {
	Line        int    `json:"line"`
	StartColumn int    `json:"startColumn"`
	EndColumn   int    `json:"endColumn"`
	NewText     string `json:"newText"`
}
