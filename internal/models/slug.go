package models

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9_-]+`)
)

// LabelToSlug derives the stored value for an action rule from its display
// label: trim, lowercase, whitespace runs become "_", anything outside
// [a-z0-9_-] is stripped. Idempotent.
func LabelToSlug(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = whitespaceRun.ReplaceAllString(s, "_")
	return nonSlugChars.ReplaceAllString(s, "")
}
