package analysis

import "testing"

func TestWordAt(t *testing.T) {
	tests := []struct {
		line      string
		col       int
		word      string
		wordStart int
	}{
		{"movej(q)", 0, "movej", 0},
		{"movej(q)", 5, "movej", 0},
		{"movej(q)", 6, "q", 6},
		{"x = a_b", 7, "a_b", 4},
		{"x = a_b", 3, "", 3},
		{"abc", 10, "abc", 0},
		{"", 0, "", 0},
	}

	for _, tt := range tests {
		word, start := WordAt(tt.line, tt.col)
		if word != tt.word || start != tt.wordStart {
			t.Errorf("WordAt(%q, %d) = %q, %d; want %q, %d", tt.line, tt.col, word, start, tt.word, tt.wordStart)
		}
	}
}

func TestCallAt(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		col    int
		callee string
		active int
		ok     bool
	}{
		{"first arg", "movej(", 6, "movej", 0, true},
		{"second arg", "movej(q, a", 10, "movej", 1, true},
		{"nested closed", "textmsg(to_str(x), y", 20, "textmsg", 1, true},
		{"nested open", "textmsg(to_str(x", 16, "to_str", 0, true},
		{"list arg", "movel(p[1, 2], a", 16, "movel", 1, true},
		{"quoted comma", `textmsg("a,b", `, 15, "textmsg", 1, true},
		{"space before paren", "foo (1, 2", 9, "foo", 1, true},
		{"grouping", "x = (1, 2", 9, "", 0, false},
		{"control word", "if (a", 5, "", 0, false},
		{"inside control call", "if (foo(a, b", 12, "foo", 1, true},
		{"closed", "foo(1)", 6, "", 0, false},
		{"comment", "# foo(", 6, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			callee, active, ok := callAt(tt.line, tt.col)
			if callee != tt.callee || active != tt.active || ok != tt.ok {
				t.Errorf("callAt(%q, %d) = %q, %d, %v; want %q, %d, %v",
					tt.line, tt.col, callee, active, ok, tt.callee, tt.active, tt.ok)
			}
		})
	}
}
