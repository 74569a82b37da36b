package types

// DeclKind categorizes URScript declarations
type DeclKind int

const (
	KindFunction DeclKind = iota
	KindThread
	KindGlobal
	KindVariable // name = value line of a .variables file
)

func (k DeclKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindThread:
		return "thread"
	case KindGlobal:
		return "global"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Declaration is a def, thread, global or variable-file entry found while scanning.
// It is created per query and never stored.
type Declaration struct {
	Name   string // identifier
	Kind   DeclKind
	Params string // raw text between the parentheses, functions and threads only
	Value  string // right-hand side for globals and variables
	Text   string // the trimmed declaration line
	Path   string // file path or buffer name
	Line   int    // 0-indexed
	Column int    // 0-indexed byte offset of the identifier
}

// Location is a position in a file
type Location struct {
	Path      string `json:"path"`
	Line      int    `json:"line"`   // 0-indexed
	Column    int    `json:"column"` // 0-indexed byte offset
	EndColumn int    `json:"endColumn"`
}

// Location returns where the declaration's identifier sits
func (d *Declaration) Location() Location {
	return Location{
		Path:      d.Path,
		Line:      d.Line,
		Column:    d.Column,
		EndColumn: d.Column + len(d.Name),
	}
}
