package format

import (
	"sort"
	"strings"
)

// State describes the bracket balance of one line. States of several
// bracket kinds are OR-ed together.
type State int

const (
	Balanced     State = 0
	Unclosed     State = 1 << 0 // more openers than closers, indent the next line
	ExcessClosed State = 1 << 1 // more closers than openers, dedent this line
)

type bracketPair struct {
	open, close byte
}

var bracketPairs = []bracketPair{
	{'(', ')'},
	{'[', ']'},
}

type pairRange struct{ start, end int }

// brackets pairs the open/close tokens of one kind outside strings and
// normalizes the comma-separated content of every pair that is not nested
// inside another pair.
func (l *line) brackets(p bracketPair) State {
	var starts []int // latest opened first
	type closer struct {
		at      int
		matched bool
	}
	var ends []closer

	for i := 0; i < len(l.text); i++ {
		c := l.text[i]
		if (c != p.open && c != p.close) || l.quoted(i) {
			continue
		}
		if c == p.open {
			starts = append([]int{i}, starts...)
		} else {
			ends = append(ends, closer{at: i})
		}
	}

	var state State
	switch {
	case len(starts) == 0 && len(ends) == 0:
		return Balanced
	case len(ends) == 0:
		return Unclosed
	case len(starts) == 0:
		return ExcessClosed
	case len(starts) > len(ends):
		state = Unclosed
	case len(starts) < len(ends):
		state = ExcessClosed
	}

	var pairs []pairRange
	for _, s := range starts {
		for j := range ends {
			if !ends[j].matched && ends[j].at > s {
				ends[j].matched = true
				pairs = append(pairs, pairRange{start: s + 1, end: ends[j].at})
				break
			}
		}
	}

	var outer []pairRange
	for _, pr := range pairs {
		nested := false
		for _, o := range pairs {
			if o.start < pr.start && pr.end < o.end {
				nested = true
				break
			}
		}
		if !nested {
			outer = append(outer, pr)
		}
	}

	// right to left so earlier offsets stay valid
	sort.Slice(outer, func(i, j int) bool { return outer[i].start > outer[j].start })
	for _, pr := range outer {
		inner := l.text[pr.start:pr.end]
		joined := strings.Join(l.splitCommas(pr.start, pr.end), ", ")
		if inner != joined {
			l.replace(pr.start, pr.end, joined, TagBracket)
		}
	}
	return state
}

// splitCommas splits text[start:end] on commas outside strings, trimming each piece
func (l *line) splitCommas(start, end int) []string {
	var parts []string
	last := start
	for i := start; i < end; i++ {
		if l.text[i] == ',' && !l.quoted(i) {
			parts = append(parts, strings.TrimSpace(l.text[last:i]))
			last = i + 1
		}
	}
	return append(parts, strings.TrimSpace(l.text[last:end]))
}
