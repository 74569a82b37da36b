package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarredhawkins/urscript-lsp/internal/source"
	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

func TestResolveDoc(t *testing.T) {
	lines := []string{
		"global x = 1",
		"###",
		"# get digital input",
		"#",
		"# reads the cached value",
		"# @param n int the input to read",
		"# @param timeout float seconds to wait",
		"# @returns bool input level",
		"# @returns int ignored",
		"###",
	}

	m := ResolveDoc("get_input", "n, timeout = 0.5", lines)
	require.NotNil(t, m)
	assert.Equal(t, "get_input", m.Name)
	assert.Equal(t, "get digital input\n\nreads the cached value", m.Comment)
	assert.Equal(t, "bool", m.ReturnType)
	assert.Equal(t, "input level", m.Return)
	assert.Empty(t, m.Deprecated)
	require.Len(t, m.Parameters, 2)
	assert.Equal(t, types.Parameter{Label: "n", Type: "int", Comment: "the input to read"}, m.Parameters[0])
	assert.Equal(t, types.Parameter{Label: "timeout", Type: "float", Comment: "seconds to wait", Default: "0.5"}, m.Parameters[1])
	assert.Equal(t, "bool get_input(int n, float timeout = 0.5)", m.Label())
}

func TestResolveDocRejects(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"empty", nil},
		{"no closing sentinel", []string{"###", "# text", "# more"}},
		{"no opening sentinel", []string{"# text", "###"}},
		{"single sentinel", []string{"###"}},
		{"sentinel not last", []string{"###", "# text", "###", "x = 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ResolveDoc("f", "", tt.lines))
		})
	}
}

func TestResolveDocWithoutReturns(t *testing.T) {
	m := ResolveDoc("f", "", []string{"###", "# does things", "###"})
	require.NotNil(t, m)
	assert.Equal(t, string(types.TypeVoid), m.ReturnType)
	assert.Equal(t, "void f()", m.Label())
	assert.Empty(t, m.Return)
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"a", []string{"a"}},
		{"a,b , c", []string{"a", "b", "c"}},
		{`"x,y", z`, []string{`"x,y"`, "z"}},
		{"p[0,0,0], f(1,2), 3", []string{"p[0,0,0]", "f(1,2)", "3"}},
		{"a = 1, b = [1, 2]", []string{"a = 1", "b = [1, 2]"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitArgs(tt.in))
		})
	}
}

func TestDefaultValueAndArgName(t *testing.T) {
	assert.Equal(t, "0.5", DefaultValue("a, speed = 0.5", "speed"))
	assert.Equal(t, "", DefaultValue("a, speed = 0.5", "a"))
	assert.Equal(t, "[1, 2]", DefaultValue("q=[1, 2]", "q"))
	assert.Equal(t, "speed", ArgName("speed = 0.5"))
	assert.Equal(t, "a", ArgName(" a "))
}

func TestWindowEvicts(t *testing.T) {
	var w Window
	for i := 0; i < WindowSize+5; i++ {
		w.Push(fmt.Sprint(i))
	}
	lines := w.Lines()
	require.Len(t, lines, WindowSize)
	assert.Equal(t, "5", lines[0])
	assert.Equal(t, fmt.Sprint(WindowSize+4), lines[WindowSize-1])

	w.Reset()
	assert.Equal(t, 0, w.Len())
}

func TestScanAttachesDoc(t *testing.T) {
	text := `###
# move to home
# @param speed float joint speed
###
def go_home(speed = 1.0):
  movej(home, v = speed)
end

def undocumented(a):
end
`
	s := NewScanner(NewScriptRegistry())
	docs := map[string]*types.Method{}
	err := s.Scan(source.NewBuffer("prog.script", text), All(), func(d *types.Declaration, win *Window) bool {
		docs[d.Name] = Doc(d, win)
		return true
	})
	require.NoError(t, err)
	require.Contains(t, docs, "go_home")
	require.Contains(t, docs, "undocumented")
	require.NotNil(t, docs["go_home"])
	assert.Equal(t, "1.0", docs["go_home"].Parameters[0].Default)
	assert.Nil(t, docs["undocumented"])
}

func TestScanDocTooFarAway(t *testing.T) {
	text := "###\n# far\n"
	for i := 0; i < WindowSize; i++ {
		text += "# filler\n"
	}
	text += "###\ndef f():\n"

	s := NewScanner(NewScriptRegistry())
	var doc *types.Method
	found := false
	err := s.Scan(source.NewBuffer("p", text), NewFilter("f", Exact), func(d *types.Declaration, win *Window) bool {
		found = true
		doc = Doc(d, win)
		return false
	})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, doc)
}

func TestScanStopsEarly(t *testing.T) {
	text := "def a():\nend\ndef b():\nend\n"
	s := NewScanner(NewScriptRegistry())
	var names []string
	require.NoError(t, s.Scan(source.NewBuffer("p", text), All(), func(d *types.Declaration, _ *Window) bool {
		names = append(names, d.Name)
		return false
	}))
	assert.Equal(t, []string{"a"}, names)

	decls, err := s.Declarations(source.NewBuffer("p", text), All())
	require.NoError(t, err)
	require.Len(t, decls, 2)
	assert.Equal(t, 2, decls[1].Line)
}
