package overlay

import (
	"strings"

	"github.com/rileyhilliard/osd/internal/metrics"
)

// Render produces the overlay text for mode: the preamble followed by the
// evaluated root, or just the preamble when nothing in the tree is visible.
// The result is markup for the on-screen renderer and is not interpreted here.
//
// Render only reads t, so one template may be rendered from many goroutines
// as long as src.Lookup is safe for concurrent use.
func (t Template) Render(mode Mode, src metrics.Source) string {
	var b strings.Builder
	for _, h := range t.Helpers {
		b.WriteString(h)
	}
	if body, ok := t.Root.Evaluate(mode, src); ok {
		b.WriteString(body)
	}
	return b.String()
}

// RenderOverlay renders the built-in layout.
func RenderOverlay(mode Mode, src metrics.Source) string {
	return defaultTemplate.Render(mode, src)
}
