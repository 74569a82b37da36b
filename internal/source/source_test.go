package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, src Source) []string {
	t.Helper()
	var lines []string
	require.NoError(t, src.Each(func(_ int, line string) bool {
		lines = append(lines, line)
		return true
	}))
	return lines
}

func TestBuffer(t *testing.T) {
	b := NewBuffer("mem", "a\r\nb\nc")
	assert.Equal(t, []string{"a", "b", "c"}, collect(t, b))
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, "b", b.Line(1))
	assert.Equal(t, "", b.Line(7))
	assert.Equal(t, "mem", b.Name())
}

func TestBufferStopsEarly(t *testing.T) {
	b := NewBuffer("mem", "a\nb\nc")
	var seen []int
	require.NoError(t, b.Each(func(n int, _ string) bool {
		seen = append(seen, n)
		return n < 1
	}))
	assert.Equal(t, []int{0, 1}, seen)
}

func TestFileReaderMatchesBuffer(t *testing.T) {
	// lines straddle the tiny chunk boundary on purpose
	text := "def move_home():\r\n  movej([0,0,0,0,0,0])\nend\n\n" + strings.Repeat("x", 40) + "\nlast"
	path := filepath.Join(t.TempDir(), "prog.script")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))

	for _, chunk := range []int{1, 3, 7, 4096} {
		got := collect(t, NewFileReader(path, chunk))
		assert.Equal(t, collect(t, NewBuffer(path, text)), got, "chunk size %d", chunk)
	}
}

func TestFileReaderLineNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.script")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0644))

	var nums []int
	require.NoError(t, NewFileReader(path, 2).Each(func(n int, line string) bool {
		nums = append(nums, n)
		return line != "two"
	}))
	assert.Equal(t, []int{0, 1}, nums)
}

func TestFileReaderMissingFile(t *testing.T) {
	err := NewFileReader(filepath.Join(t.TempDir(), "nope.script"), 0).Each(func(int, string) bool { return true })
	assert.Error(t, err)
}

func TestOpenPicksReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.script")
	require.NoError(t, os.WriteFile(path, []byte("global a = 1\nglobal b = 2\n"), 0644))

	small, err := Open(path, 1024, 0)
	require.NoError(t, err)
	assert.IsType(t, &Buffer{}, small)

	large, err := Open(path, 4, 0)
	require.NoError(t, err)
	assert.IsType(t, &FileReader{}, large)

	assert.Equal(t, collect(t, small), collect(t, large))

	_, err = Open(filepath.Join(dir, "missing.script"), 0, 0)
	assert.Error(t, err)
}
