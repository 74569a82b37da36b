package types

import (
	"strings"
)

// ValueType is the declared type of a parameter or return value
type ValueType string

const (
	TypeVoid   ValueType = "void"
	TypeBool   ValueType = "bool"
	TypeInt    ValueType = "int"
	TypeFloat  ValueType = "float"
	TypeNumber ValueType = "number"
	TypePose   ValueType = "pose"
	TypeArray  ValueType = "array"
	TypeString ValueType = "string"
	TypeStruct ValueType = "struct"
	TypeMatrix ValueType = "matrix"
)

// ParseValueType maps a type name to a ValueType, case-insensitively.
// Unknown and empty names map to void.
func ParseValueType(s string) ValueType {
	switch t := ValueType(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeBool, TypeInt, TypeFloat, TypeNumber, TypePose,
		TypeArray, TypeString, TypeStruct, TypeMatrix:
		return t
	default:
		return TypeVoid
	}
}

// TypeNames lists the concrete value types in snippet choice order
var TypeNames = []string{"bool", "int", "float", "number", "array", "pose", "string"}

// Parameter documents one function argument
type Parameter struct {
	Label   string `yaml:"label" json:"label"`
	Type    string `yaml:"type" json:"type"`
	Comment string `yaml:"comment,omitempty" json:"comment,omitempty"`
	Default string `yaml:"default,omitempty" json:"default,omitempty"`
}

// Signature renders "type name" or "type name = default"
func (p Parameter) Signature() string {
	s := string(ParseValueType(p.Type)) + " " + p.Label
	if strings.TrimSpace(p.Default) != "" {
		s += " = " + p.Default
	}
	return s
}

// Documentation renders the parameter tooltip shown in signature help
func (p Parameter) Documentation() string {
	return string(ParseValueType(p.Type)) + " **" + p.Label + "**\n> " + p.Comment
}

// DocLine renders the parameter as an entry of a method's Parameters section
func (p Parameter) DocLine() string {
	var b strings.Builder
	b.WriteString("  - `" + p.Label + "` (*" + string(ParseValueType(p.Type)) + "*)")
	if strings.TrimSpace(p.Default) != "" {
		b.WriteString(" = " + p.Default)
	}
	b.WriteString("  \n    " + p.Comment)
	return b.String()
}

// Method describes a documented function, either from the built-in catalog
// or recovered from a ### doc block above a def.
type Method struct {
	Name       string      `yaml:"name" json:"name"`
	ReturnType string      `yaml:"returnType,omitempty" json:"returnType,omitempty"`
	Return     string      `yaml:"return,omitempty" json:"return,omitempty"`
	Deprecated string      `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Comment    string      `yaml:"comment,omitempty" json:"comment,omitempty"`
	Parameters []Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Label renders "rettype name(type a, type b = 1)"
func (m *Method) Label() string {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = p.Signature()
	}
	return string(ParseValueType(m.ReturnType)) + " " + m.Name + "(" + strings.Join(params, ", ") + ")"
}

// Documentation renders the markdown body shown for hover and completion
func (m *Method) Documentation() string {
	var sections []string
	if len(m.Parameters) > 0 {
		lines := make([]string, len(m.Parameters))
		for i, p := range m.Parameters {
			lines[i] = p.DocLine()
		}
		sections = append(sections, "- ***Parameters***\n"+strings.Join(lines, "\n"))
	}
	if strings.TrimSpace(m.Return) != "" {
		sections = append(sections, "- ***Return***  \n  "+m.Return)
	}
	if strings.TrimSpace(m.Deprecated) != "" {
		sections = append(sections, "- ***Deprecated***\n  > "+m.Deprecated)
	}
	if len(sections) == 0 {
		return m.Comment
	}
	return m.Comment + "\n\n" + strings.Join(sections, "\n\n")
}
