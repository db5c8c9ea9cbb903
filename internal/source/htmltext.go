package source

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// CleanHTML strips all markup, unescapes entities, and collapses runs of
// whitespace to single spaces.
func CleanHTML(s string) string {
	if s == "" {
		return s
	}
	clean := stripPolicy.Sanitize(s)
	clean = html.UnescapeString(clean)
	return strings.Join(strings.Fields(clean), " ")
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
