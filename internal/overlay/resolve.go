package overlay

import (
	"regexp"
	"strings"

	"github.com/rileyhilliard/osd/internal/metrics"
)

// MissingValue replaces placeholders the source cannot resolve.
const MissingValue = "-"

// placeholderPattern matches the shortest {...} span. Other bracketed markup
// such as <C4> or <FR> belongs to the renderer and is left alone.
var placeholderPattern = regexp.MustCompile(`{([^}]+)}`)

// Resolve substitutes every {NAME} placeholder in text with src.Lookup(NAME).
//
// Unresolved placeholders become MissingValue, unless ignoreMissing is set,
// in which case the whole text is dropped and Resolve returns "", false.
// Text without placeholders is returned unchanged.
func Resolve(text string, src metrics.Source, ignoreMissing bool) (string, bool) {
	if text == "" {
		return "", true
	}

	out := text
	seen := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		token, name := match[0], match[1]
		if seen[token] {
			continue
		}
		seen[token] = true

		value, ok := lookup(src, name)
		if !ok {
			if ignoreMissing {
				return "", false
			}
			value = MissingValue
		}
		out = strings.ReplaceAll(out, token, value)
	}
	return out, true
}

// Placeholders returns the distinct placeholder names in text, in order of
// first appearance.
func Placeholders(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		key := strings.ToUpper(match[1])
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, match[1])
	}
	return names
}

func lookup(src metrics.Source, name string) (string, bool) {
	if src == nil {
		return "", false
	}
	return src.Lookup(name)
}
