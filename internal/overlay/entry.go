package overlay

import (
	"strconv"
	"strings"

	"github.com/rileyhilliard/osd/internal/metrics"
)

// Entry is one node of an overlay template. A tree of entries is built once
// and only read afterwards; evaluation never mutates it.
type Entry struct {
	// Text is literal markup with optional {NAME} placeholders.
	Text string

	// Include restricts the entry to these modes when non-empty.
	Include []Mode

	// Exclude hides the entry in these modes. Checked before Include.
	Exclude []Mode

	// Children are evaluated in order and appended after Text.
	Children []Entry

	// Separator joins the outputs of visible children.
	Separator string

	// IgnoreMissing drops Text entirely when any placeholder is unresolved.
	// Children are unaffected.
	IgnoreMissing bool
}

// Visible reports whether the entry takes part in rendering for mode.
func (e Entry) Visible(mode Mode) bool {
	if len(e.Exclude) > 0 && containsMode(e.Exclude, mode) {
		return false
	}
	if len(e.Include) > 0 && !containsMode(e.Include, mode) {
		return false
	}
	return true
}

// Evaluate renders the entry for mode. The boolean is false when the entry
// contributes nothing: it is hidden for the mode, its output is empty, or it
// declares children and none of them produced output. In the last case the
// entry's own Text is discarded too, so a label never shows without data.
func (e Entry) Evaluate(mode Mode, src metrics.Source) (string, bool) {
	if !e.Visible(mode) {
		return "", false
	}

	out, _ := Resolve(e.Text, src, e.IgnoreMissing)

	if len(e.Children) > 0 {
		parts := make([]string, 0, len(e.Children))
		for _, child := range e.Children {
			if v, ok := child.Evaluate(mode, src); ok {
				parts = append(parts, v)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		out += strings.Join(parts, e.Separator)
	}

	if out == "" {
		return "", false
	}
	return out, true
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	c := e
	c.Include = append([]Mode(nil), e.Include...)
	c.Exclude = append([]Mode(nil), e.Exclude...)
	if e.Children != nil {
		c.Children = make([]Entry, len(e.Children))
		for i, child := range e.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Walk calls fn for the entry and every descendant in depth-first order.
// path names the node the way layout errors do, e.g. "root.children[2]".
func (e Entry) Walk(path string, fn func(path string, e Entry)) {
	fn(path, e)
	for i, child := range e.Children {
		child.Walk(childPath(path, i), fn)
	}
}

func childPath(parent string, i int) string {
	return parent + ".children[" + strconv.Itoa(i) + "]"
}
