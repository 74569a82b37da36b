package analysis

import "slices"

// words that may precede a parenthesis without being a call
var controlWords = []string{"if", "elif", "while", "and", "or", "not", "return"}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// WordAt returns the identifier touching byte column col and its start
// column. A cursor just past the last character still counts.
func WordAt(line string, col int) (string, int) {
	if col > len(line) {
		col = len(line)
	}
	if col < 0 {
		col = 0
	}
	start, end := col, col
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	for end < len(line) && isWordByte(line[end]) {
		end++
	}
	return line[start:end], start
}

// wordBefore returns the part of the identifier left of col
func wordBefore(line string, col int) string {
	if col > len(line) {
		col = len(line)
	}
	start := col
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	return line[start:col]
}

// callAt finds the innermost call whose argument list is open at col. It
// returns the callee name and the index of the argument under the cursor.
func callAt(line string, col int) (name string, active int, ok bool) {
	if col > len(line) {
		col = len(line)
	}

	type frame struct {
		open   int
		commas int
		paren  bool
	}
	var stack []frame
	inQuote := false
	for i := 0; i < col; i++ {
		switch c := line[i]; {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '#':
			return "", 0, false
		case c == '(' || c == '[':
			stack = append(stack, frame{open: i, paren: c == '('})
		case (c == ')' || c == ']') && len(stack) > 0:
			stack = stack[:len(stack)-1]
		case c == ',' && len(stack) > 0:
			stack[len(stack)-1].commas++
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		f := stack[i]
		if !f.paren {
			continue
		}
		j := f.open
		for j > 0 && (line[j-1] == ' ' || line[j-1] == '\t') {
			j--
		}
		word, _ := WordAt(line, j)
		if j == 0 || !isWordByte(line[j-1]) || slices.Contains(controlWords, word) {
			// a grouping parenthesis, keep looking outward
			continue
		}
		return word, f.commas, true
	}
	return "", 0, false
}
