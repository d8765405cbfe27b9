// Package slug derives URL-safe identifiers from post titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	separators = regexp.MustCompile(`[\s_-]+`)
)

// Make lowercases the title, strips everything that is not a word
// character, whitespace or hyphen, collapses runs of whitespace,
// underscores and hyphens into a single hyphen, and trims hyphens
// from both ends. "Hello, World!  2025" becomes "hello-world-2025".
func Make(title string) string {
	s := strings.ToLower(title)
	s = nonWord.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
