package parser

// WindowSize is how many preceding lines are kept for doc block lookup.
// Doc blocks longer than this do not resolve.
const WindowSize = 20

// Window is a fixed-size ring of the most recently scanned lines
type Window struct {
	buf   [WindowSize]string
	start int
	n     int
}

// Push appends line, evicting the oldest when full
func (w *Window) Push(line string) {
	if w.n < WindowSize {
		w.buf[(w.start+w.n)%WindowSize] = line
		w.n++
		return
	}
	w.buf[w.start] = line
	w.start = (w.start + 1) % WindowSize
}

// Lines returns the retained lines, oldest first
func (w *Window) Lines() []string {
	out := make([]string, w.n)
	for i := range out {
		out[i] = w.buf[(w.start+i)%WindowSize]
	}
	return out
}

// Len returns the number of retained lines
func (w *Window) Len() int { return w.n }

// Reset drops every retained line
func (w *Window) Reset() {
	w.start, w.n = 0, 0
}
