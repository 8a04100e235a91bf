package match

import (
	"regexp"
	"strings"
)

var (
	nonWordRegex    = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	multiSpaceRegex = regexp.MustCompile(`\s+`)
)

// Normalize converts a title to its canonical comparison form: lowercase,
// punctuation and symbols removed, whitespace runs collapsed to a single
// space, ends trimmed. Normalizing an already-normalized string yields the
// same string.
func Normalize(title string) string {
	normalized := strings.ToLower(title)
	normalized = nonWordRegex.ReplaceAllString(normalized, "")
	normalized = multiSpaceRegex.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}
