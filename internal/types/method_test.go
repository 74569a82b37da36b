package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValueType(t *testing.T) {
	tests := []struct {
		in   string
		want ValueType
	}{
		{"bool", TypeBool},
		{"Pose", TypePose},
		{" NUMBER ", TypeNumber},
		{"none", TypeVoid},
		{"", TypeVoid},
		{"widget", TypeVoid},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseValueType(tt.in))
		})
	}
}

func TestMethodLabel(t *testing.T) {
	m := &Method{
		Name:       "get_input",
		ReturnType: "bool",
		Parameters: []Parameter{
			{Label: "n", Type: "int", Comment: "the input to read"},
			{Label: "timeout", Type: "float", Default: "0.5"},
		},
	}
	assert.Equal(t, "bool get_input(int n, float timeout = 0.5)", m.Label())

	m.ReturnType = "None"
	m.Parameters = nil
	assert.Equal(t, "void get_input()", m.Label())
}

func TestMethodDocumentation(t *testing.T) {
	m := &Method{
		Name:       "get_input",
		ReturnType: "bool",
		Return:     "input level",
		Comment:    "get digital input",
		Parameters: []Parameter{
			{Label: "n", Type: "int", Comment: "the input to read"},
		},
	}

	want := "get digital input\n\n" +
		"- ***Parameters***\n  - `n` (*int*)  \n    the input to read\n\n" +
		"- ***Return***  \n  input level"
	assert.Equal(t, want, m.Documentation())

	bare := &Method{Name: "f", Comment: "just text"}
	assert.Equal(t, "just text", bare.Documentation())

	deprecated := &Method{Name: "f", Deprecated: "use g"}
	assert.Equal(t, "\n\n- ***Deprecated***\n  > use g", deprecated.Documentation())
}

func TestParameterRendering(t *testing.T) {
	p := Parameter{Label: "a", Type: "pose", Comment: "target", Default: "p[0,0,0,0,0,0]"}
	assert.Equal(t, "pose a = p[0,0,0,0,0,0]", p.Signature())
	assert.Equal(t, "pose **a**\n> target", p.Documentation())
	assert.Equal(t, "  - `a` (*pose*) = p[0,0,0,0,0,0]  \n    target", p.DocLine())
}

func TestHoverMarkdown(t *testing.T) {
	h := &Hover{Sections: []HoverSection{
		{Code: "global speed"},
		{Markdown: "*vars.variables*"},
		{},
	}}
	assert.Equal(t, "```urscript\nglobal speed\n```\n\n*vars.variables*", h.Markdown())
}

func TestSignatureOf(t *testing.T) {
	m := &Method{
		Name: "f",
		Parameters: []Parameter{
			{Label: "a", Type: "int", Comment: "first"},
			{Label: "b", Type: "int", Comment: "second"},
		},
	}
	sig := SignatureOf(m)
	assert.Equal(t, "void f(int a, int b)", sig.Label)
	if assert.Len(t, sig.Parameters, 2) {
		assert.Equal(t, "a", sig.Parameters[0].Label)
		assert.Equal(t, "int **b**\n> second", sig.Parameters[1].Documentation)
	}
	assert.Equal(t, 0, sig.ActiveParameter)
}
