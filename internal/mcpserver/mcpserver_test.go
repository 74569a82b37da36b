package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jarredhawkins/urscript-lsp/internal/analysis"
	"github.com/jarredhawkins/urscript-lsp/internal/catalog"
	"github.com/jarredhawkins/urscript-lsp/internal/config"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

func newTestAnalyzer(t *testing.T, root string) *analysis.Analyzer {
	t.Helper()
	cat, err := catalog.Builtin()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return analysis.New(root, config.Default(), cat)
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func call(t *testing.T, handle func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	result, err := handle(context.Background(), makeReq(args))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func hasRequired(def mcp.Tool, name string) bool {
	for _, r := range def.InputSchema.Required {
		if r == name {
			return true
		}
	}
	return false
}

// ─── Registration ────────────────────────────────────────────────────────────

func TestNew_RegistersTools(t *testing.T) {
	s := New(newTestAnalyzer(t, ""))
	if s == nil {
		t.Fatal("New returned nil")
	}
}

// ─── FormatTool Tests ────────────────────────────────────────────────────────

func TestFormatTool_Definition(t *testing.T) {
	def := NewFormatTool(newTestAnalyzer(t, "")).Definition()
	if def.Name != "urscript_format" {
		t.Errorf("tool name = %q, want %q", def.Name, "urscript_format")
	}
	if _, ok := def.InputSchema.Properties["tab_size"]; !ok {
		t.Error("missing 'tab_size' parameter")
	}
	if !hasRequired(def, "text") {
		t.Error("'text' should be required")
	}
}

func TestFormatTool_Handle(t *testing.T) {
	tool := NewFormatTool(newTestAnalyzer(t, ""))

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "default tab size",
			args: map[string]interface{}{"text": "def f():\nx=movej(q,a=1)\nend"},
			want: "def f():\n  x = movej(q, a = 1)\nend",
		},
		{
			name: "explicit tab size",
			args: map[string]interface{}{"text": "if a>1:\nb=2\nend", "tab_size": float64(4)},
			want: "if a > 1:\n    b = 2\nend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := call(t, tool.Handle, tt.args)
			if result.IsError {
				t.Fatalf("unexpected tool error: %s", resultText(result))
			}
			if got := resultText(result); got != tt.want {
				t.Errorf("formatted =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestFormatTool_MissingText(t *testing.T) {
	tool := NewFormatTool(newTestAnalyzer(t, ""))
	result := call(t, tool.Handle, map[string]interface{}{"text": "  "})
	if !result.IsError {
		t.Error("expected error result for blank text")
	}
}

// ─── OutlineTool Tests ───────────────────────────────────────────────────────

func TestOutlineTool_Handle(t *testing.T) {
	tool := NewOutlineTool(newTestAnalyzer(t, ""))

	text := "def pick(p):\n  movel(p)\nend\nthread watchdog():\n  sync()\nend\n"
	got := resultText(call(t, tool.Handle, map[string]interface{}{"text": text}))

	if !strings.Contains(got, "Found 2 declarations") {
		t.Errorf("expected count header, got:\n%s", got)
	}
	if !strings.Contains(got, "- function `pick(p)` (line 1)") {
		t.Errorf("missing pick entry, got:\n%s", got)
	}
	if !strings.Contains(got, "- thread `watchdog()` (line 4)") {
		t.Errorf("missing watchdog entry, got:\n%s", got)
	}

	empty := resultText(call(t, tool.Handle, map[string]interface{}{"text": "x = 1"}))
	if !strings.Contains(empty, "No functions or threads") {
		t.Errorf("unexpected empty outline text: %s", empty)
	}
}

// ─── DefinitionTool Tests ────────────────────────────────────────────────────

func TestDefinitionTool_Handle(t *testing.T) {
	root := t.TempDir()
	lib := filepath.Join(root, "lib", "helpers.script")
	if err := os.MkdirAll(filepath.Dir(lib), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(lib, []byte("def helper_fn(a):\nend\n"), 0644); err != nil {
		t.Fatal(err)
	}
	tool := NewDefinitionTool(newTestAnalyzer(t, root))

	got := resultText(call(t, tool.Handle, map[string]interface{}{"name": "helper_fn"}))
	if !strings.Contains(got, "- "+filepath.Join("lib", "helpers.script")+":1:5") {
		t.Errorf("expected workspace location, got:\n%s", got)
	}

	got = resultText(call(t, tool.Handle, map[string]interface{}{
		"name": "helper_fn",
		"text": "x = 1\ndef helper_fn():\nend",
	}))
	if !strings.Contains(got, "Found 1 declarations") || !strings.Contains(got, "<input>:2:5") {
		t.Errorf("text should shadow the workspace, got:\n%s", got)
	}

	got = resultText(call(t, tool.Handle, map[string]interface{}{"name": "missing_fn"}))
	if !strings.Contains(got, "No declaration") {
		t.Errorf("unexpected text: %s", got)
	}

	if result := call(t, tool.Handle, map[string]interface{}{}); !result.IsError {
		t.Error("expected error result without name")
	}
}

// ─── LookupTool Tests ────────────────────────────────────────────────────────

func TestLookupTool_Handle(t *testing.T) {
	tool := NewLookupTool(newTestAnalyzer(t, ""))

	got := resultText(call(t, tool.Handle, map[string]interface{}{"name": "movej"}))
	if !strings.Contains(got, "```urscript\nvoid movej(array q") {
		t.Errorf("expected catalog signature, got:\n%s", got)
	}

	got = resultText(call(t, tool.Handle, map[string]interface{}{
		"name": "my_fn",
		"text": "def my_fn(a, b):\nend",
	}))
	if !strings.Contains(got, "my_fn(a, b)") {
		t.Errorf("expected user function hover, got:\n%s", got)
	}

	got = resultText(call(t, tool.Handle, map[string]interface{}{"name": "movjj"}))
	if !strings.Contains(got, "Did you mean: movej") {
		t.Errorf("expected suggestion, got:\n%s", got)
	}

	got = resultText(call(t, tool.Handle, map[string]interface{}{"name": "zzzzzzzzzzzz"}))
	if strings.Contains(got, "Did you mean") {
		t.Errorf("unexpected suggestion: %s", got)
	}
}
