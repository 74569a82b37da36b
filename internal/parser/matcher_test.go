package parser

import (
	"testing"

	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

func TestFunctionMatcher(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		filter     *Filter
		wantName   string
		wantParams string
		wantCol    int
		wantNil    bool
	}{
		{
			name:     "simple def",
			line:     "def move_home():",
			filter:   All(),
			wantName: "move_home",
			wantCol:  4,
		},
		{
			name:       "def with params",
			line:       "def pick(target, speed=0.5):",
			filter:     All(),
			wantName:   "pick",
			wantParams: "target, speed=0.5",
			wantCol:    4,
		},
		{
			name:       "indented def",
			line:       "    def inner(a):",
			filter:     All(),
			wantName:   "inner",
			wantParams: "a",
			wantCol:    8,
		},
		{
			name:     "prefix is case-insensitive",
			line:     "def MoveHome():",
			filter:   NewFilter("move", Prefix),
			wantName: "MoveHome",
			wantCol:  4,
		},
		{
			name:    "exact is case-sensitive",
			line:    "def MoveHome():",
			filter:  NewFilter("movehome", Exact),
			wantNil: true,
		},
		{
			name:    "prefix does not match mid-word",
			line:    "def do_step():",
			filter:  NewFilter("step", Prefix),
			wantNil: true,
		},
		{
			name:    "exact does not match longer name",
			line:    "def step_once():",
			filter:  NewFilter("step", Exact),
			wantNil: true,
		},
		{
			name:    "missing colon",
			line:    "def broken()",
			filter:  All(),
			wantNil: true,
		},
		{
			name:    "call is not a declaration",
			line:    "move_home()",
			filter:  All(),
			wantNil: true,
		},
		{
			name:    "kind restriction",
			line:    "def f():",
			filter:  NewFilter("", Prefix, types.KindGlobal),
			wantNil: true,
		},
	}

	matcher := &FunctionMatcher{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &ParseContext{Path: "/test/prog.script", LineNum: 3, Filter: tt.filter}
			result := matcher.Match(tt.line, ctx)
			if tt.wantNil {
				if result != nil {
					t.Errorf("expected nil, got %+v", result.Decl)
				}
				return
			}
			if result == nil {
				t.Fatal("expected match, got nil")
			}
			d := result.Decl
			if d.Name != tt.wantName {
				t.Errorf("name = %q, want %q", d.Name, tt.wantName)
			}
			if d.Params != tt.wantParams {
				t.Errorf("params = %q, want %q", d.Params, tt.wantParams)
			}
			if d.Column != tt.wantCol {
				t.Errorf("column = %d, want %d", d.Column, tt.wantCol)
			}
			if d.Kind != types.KindFunction || d.Line != 3 || d.Path != "/test/prog.script" {
				t.Errorf("unexpected declaration %+v", d)
			}
		})
	}
}

func TestThreadMatcher(t *testing.T) {
	matcher := &ThreadMatcher{}
	ctx := &ParseContext{Filter: NewFilter("watch", Exact)}

	result := matcher.Match("  thread watch():", ctx)
	if result == nil {
		t.Fatal("expected match, got nil")
	}
	if result.Decl.Name != "watch" || result.Decl.Kind != types.KindThread || result.Decl.Column != 9 {
		t.Errorf("unexpected declaration %+v", result.Decl)
	}

	if matcher.Match("def watch():", ctx) != nil {
		t.Error("thread matcher accepted a def")
	}
}

func TestGlobalMatcher(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		filter    *Filter
		wantName  string
		wantValue string
		wantNil   bool
	}{
		{
			name:     "bare global",
			line:     "global counter",
			filter:   All(),
			wantName: "counter",
		},
		{
			name:      "global with value",
			line:      "global home = p[0, 0, 0.3, 0, 3.14, 0]",
			filter:    NewFilter("home", Exact),
			wantName:  "home",
			wantValue: "p[0, 0, 0.3, 0, 3.14, 0]",
		},
		{
			name:     "prefix",
			line:     "  global Speed_max=1",
			filter:   NewFilter("speed", Prefix),
			wantName: "Speed_max",
		},
		{
			name:    "exact rejects longer name",
			line:    "global speed_max = 1",
			filter:  NewFilter("speed", Exact),
			wantNil: true,
		},
		{
			name:    "not a global",
			line:    "local speed = 1",
			filter:  All(),
			wantNil: true,
		},
	}

	matcher := &GlobalMatcher{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.Match(tt.line, &ParseContext{Filter: tt.filter})
			if tt.wantNil {
				if result != nil {
					t.Errorf("expected nil, got %+v", result.Decl)
				}
				return
			}
			if result == nil {
				t.Fatal("expected match, got nil")
			}
			if result.Decl.Name != tt.wantName {
				t.Errorf("name = %q, want %q", result.Decl.Name, tt.wantName)
			}
			if tt.wantValue != "" && result.Decl.Value != tt.wantValue {
				t.Errorf("value = %q, want %q", result.Decl.Value, tt.wantValue)
			}
		})
	}
}

func TestVariableMatcher(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		filter    *Filter
		wantName  string
		wantValue string
		wantNil   bool
	}{
		{"assignment", "tool_offset=p[0,0,0.1,0,0,0]", All(), "tool_offset", "p[0,0,0.1,0,0,0]", false},
		{"spaced", "  speed = 0.25", NewFilter("speed", Exact), "speed", "0.25", false},
		{"comparison", "a == b", All(), "", "", true},
		{"empty value", "a =", All(), "", "", true},
		{"other name", "speed = 1", NewFilter("accel", Prefix), "", "", true},
	}

	matcher := &VariableMatcher{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.Match(tt.line, &ParseContext{Filter: tt.filter})
			if tt.wantNil {
				if result != nil {
					t.Errorf("expected nil, got %+v", result.Decl)
				}
				return
			}
			if result == nil {
				t.Fatal("expected match, got nil")
			}
			if result.Decl.Name != tt.wantName || result.Decl.Value != tt.wantValue {
				t.Errorf("got %q = %q, want %q = %q", result.Decl.Name, result.Decl.Value, tt.wantName, tt.wantValue)
			}
			if result.Decl.Kind != types.KindVariable {
				t.Errorf("kind = %v, want variable", result.Decl.Kind)
			}
		})
	}
}

func TestRegistryPriority(t *testing.T) {
	r := NewScriptRegistry()
	matchers := r.Matchers()
	if len(matchers) != 3 {
		t.Fatalf("expected 3 matchers, got %d", len(matchers))
	}
	want := []string{"function", "thread", "global"}
	for i, m := range matchers {
		if m.Name() != want[i] {
			t.Errorf("matcher %d = %s, want %s", i, m.Name(), want[i])
		}
	}
}

func TestFilterQuotesKeyword(t *testing.T) {
	f := NewFilter("a.b", Prefix)
	ctx := &ParseContext{Filter: f}
	if (&FunctionMatcher{}).Match("def axb():", ctx) != nil {
		t.Error("keyword metacharacters must be matched literally")
	}
}
