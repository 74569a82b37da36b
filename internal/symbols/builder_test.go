package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarredhawkins/urscript-lsp/internal/source"
	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

const program = `global speed = 0.25
global home

###
# read a digital input
# @param n int the input to read
# @param wait float seconds to wait
# @returns bool input level
###
def get_input(n, wait = 0.1):
  sleep(wait)
  return get_standard_digital_in(n)
end

def pick(target, "a,b", z):
  movel(target)
end

thread watchdog():
  sync()
end

def get_input(n):
end
`

func buf() source.Source {
	return source.NewBuffer("/work/main.script", program)
}

func TestCompletionsPrefix(t *testing.T) {
	b := NewBuilder()
	set := NewCompletionSet()
	require.NoError(t, b.Completions(buf(), "GET", set))

	items := set.Items()
	require.Len(t, items, 1, "duplicate get_input must collapse")
	c := items[0]
	assert.Equal(t, "get_input", c.Label)
	assert.Equal(t, types.CompletionFunction, c.Kind)
	assert.Equal(t, "bool get_input(int n, float wait = 0.1)", c.Detail)
	assert.Equal(t, "get_input", c.InsertText)
	assert.Contains(t, c.CommitCharacters, "(")
	assert.Contains(t, c.Documentation, "read a digital input")
}

func TestCompletionsKinds(t *testing.T) {
	b := NewBuilder()
	set := NewCompletionSet()
	require.NoError(t, b.Completions(buf(), "", set))

	byLabel := map[string]types.Completion{}
	for _, c := range set.Items() {
		byLabel[c.Label] = c
	}
	require.Len(t, byLabel, 5)

	assert.Equal(t, "global speed", byLabel["speed"].Detail)
	assert.Equal(t, "speed", byLabel["speed"].InsertText)
	assert.Equal(t, types.CompletionVariable, byLabel["home"].Kind)

	assert.Equal(t, "watchdog()", byLabel["watchdog"].InsertText)
	assert.Equal(t, "thread watchdog", byLabel["watchdog"].Detail)

	pick := byLabel["pick"]
	assert.Equal(t, `pick(target, "a,b", z)`, pick.Detail)
	assert.Equal(t, `pick(${1:target}, ${2:"a,b"}, ${3:z})$0`, pick.InsertText)
	assert.True(t, pick.Snippet)
}

func TestCompletionsKeepExisting(t *testing.T) {
	b := NewBuilder()
	set := NewCompletionSet()
	set.Add(types.Completion{Label: "pick", Detail: "catalog"})
	require.NoError(t, b.Completions(buf(), "pi", set))
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "catalog", set.Items()[0].Detail)
}

func TestCompletionSetZeroValue(t *testing.T) {
	var set CompletionSet
	assert.False(t, set.Has("pick"))
	assert.True(t, set.Add(types.Completion{Label: "pick"}))
	assert.False(t, set.Add(types.Completion{Label: "pick", Detail: "dup"}))
	assert.True(t, set.Has("pick"))
	require.Equal(t, 1, set.Len())
	assert.Empty(t, set.Items()[0].Detail)

	b := NewBuilder()
	zero := &CompletionSet{}
	require.NoError(t, b.Completions(buf(), "pi", zero))
	assert.Equal(t, 1, zero.Len())
}

func TestHover(t *testing.T) {
	b := NewBuilder()

	h, err := b.Hover(buf(), "get_input")
	require.NoError(t, err)
	require.NotNil(t, h)
	require.Len(t, h.Sections, 2)
	assert.Equal(t, "bool get_input(int n, float wait = 0.1)", h.Sections[0].Code)

	h, err = b.Hover(buf(), "pick")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "*user function*", h.Sections[0].Markdown)
	assert.Equal(t, `pick(target, "a,b", z)`, h.Sections[1].Markdown)

	h, err = b.Hover(buf(), "speed")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "global speed", h.Sections[0].Code)

	h, err = b.Hover(buf(), "watchdog")
	require.NoError(t, err)
	assert.Equal(t, "thread watchdog", h.Sections[0].Code)

	h, err = b.Hover(buf(), "get")
	require.NoError(t, err)
	assert.Nil(t, h, "hover is exact-name only")
}

func TestSignature(t *testing.T) {
	b := NewBuilder()

	sig, err := b.Signature(buf(), "get_input")
	require.NoError(t, err)
	require.NotNil(t, sig)
	require.Len(t, sig.Parameters, 2)
	assert.Equal(t, "n", sig.Parameters[0].Label)
	assert.Equal(t, "wait", sig.Parameters[1].Label)

	sig, err = b.Signature(buf(), "pick")
	require.NoError(t, err)
	assert.Nil(t, sig, "undocumented functions have no signature")

	sig, err = b.Signature(buf(), "watchdog")
	require.NoError(t, err)
	assert.Nil(t, sig, "threads have no signature")
}

func TestDefinitions(t *testing.T) {
	b := NewBuilder()
	locs, err := b.Definitions(buf(), "get_input")
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, types.Location{Path: "/work/main.script", Line: 9, Column: 4, EndColumn: 13}, locs[0])
	assert.Equal(t, 22, locs[1].Line)

	locs, err = b.Definitions(buf(), "home")
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, 7, locs[0].Column)
}

func TestOutline(t *testing.T) {
	b := NewBuilder()
	entries, err := b.Outline(buf())
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "get_input", entries[0].Name)
	assert.Equal(t, "get_input(n, wait = 0.1)", entries[0].Detail)
	assert.Equal(t, types.KindThread, entries[2].Kind)
	assert.Equal(t, "watchdog()", entries[2].Detail)
}

const variables = `speed=0.5
home_pose = p[0,0,0.3,0,3.14,0]
speed_max = 1.2
`

func TestVariableQueries(t *testing.T) {
	b := NewBuilder()
	src := source.NewBuffer("/work/robot.variables", variables)

	set := NewCompletionSet()
	require.NoError(t, b.VariableCompletions(src, "spe", set))
	require.Equal(t, 2, set.Len())
	assert.Equal(t, "*robot.variables*\n\nspeed = `0.5`", set.Items()[0].Documentation)

	h, err := b.VariableHover(src, "home_pose")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "*robot.variables*", h.Sections[0].Markdown)
	assert.Equal(t, "global home_pose = p[0,0,0.3,0,3.14,0]", h.Sections[1].Code)

	locs, err := b.VariableDefinitions(src, "speed_max")
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, 2, locs[0].Line)
}
