package scan

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minAuthorLength = 2   // exclusive
	maxAuthorLength = 100 // exclusive
	// Adjacency fallback bounds: a title-ish line followed by a short
	// capitalized line.
	adjacencyTitleMinLength  = 10
	adjacencyAuthorMaxLength = 50
)

var (
	byLineRegex        = regexp.MustCompile(`(?i)^by\s+(.+)$`)
	authorLabelRegex   = regexp.MustCompile(`(?i)^author[:\s]+(.+)$`)
	writtenByRegex     = regexp.MustCompile(`(?i)^written by\s+(.+)$`)
	authorNoisePrefixes = []string{"page", "chapter", "table", "index", "copyright"}
)

// ExtractAuthor scans raw OCR text for a likely author name. Explicit
// markers ("by ...", "Author: ...", "written by ...") win, scanned top to
// bottom; when no marker appears anywhere, a line directly below a
// title-like line that looks like a capitalized person name is used.
// The second return value is false when nothing plausible was found.
func ExtractAuthor(text string) (string, bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	for _, line := range lines {
		if author, ok := matchAuthorLine(line); ok {
			return author, true
		}
	}

	return adjacentAuthor(lines)
}

// IsAuthorLine reports whether the line is an explicit author marker rather
// than a title.
func IsAuthorLine(line string) bool {
	_, ok := matchAuthorLine(strings.TrimSpace(line))
	return ok
}

// matchAuthorLine tries the explicit marker patterns against a single line.
func matchAuthorLine(line string) (string, bool) {
	if m := byLineRegex.FindStringSubmatch(line); m != nil {
		candidate := strings.TrimSpace(m[1])
		if authorLengthOK(candidate) && !startsWithNoiseWord(candidate) {
			return candidate, true
		}
	}
	if m := authorLabelRegex.FindStringSubmatch(line); m != nil {
		candidate := strings.TrimSpace(m[1])
		if authorLengthOK(candidate) {
			return candidate, true
		}
	}
	if m := writtenByRegex.FindStringSubmatch(line); m != nil {
		candidate := strings.TrimSpace(m[1])
		if authorLengthOK(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// adjacentAuthor looks for a title-like line immediately followed by a short
// line shaped like a capitalized person name.
func adjacentAuthor(lines []string) (string, bool) {
	for i := 0; i+1 < len(lines); i++ {
		title := lines[i]
		candidate := lines[i+1]

		if utf8.RuneCountInString(title) <= adjacencyTitleMinLength {
			continue
		}
		n := utf8.RuneCountInString(candidate)
		if n <= minAuthorLength || n >= adjacencyAuthorMaxLength {
			continue
		}
		if looksLikePersonName(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func authorLengthOK(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > minAuthorLength && n < maxAuthorLength
}

func startsWithNoiseWord(s string) bool {
	lower := strings.ToLower(s)
	for _, prefix := range authorNoisePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// looksLikePersonName reports whether every word starts with an uppercase
// letter and carries no further uppercase letters, the line is not entirely
// uppercase, and the line is not a known noise word.
func looksLikePersonName(line string) bool {
	if line == strings.ToUpper(line) && line != strings.ToLower(line) {
		return false
	}
	if startsWithNoiseWord(line) {
		return false
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	for _, word := range words {
		runes := []rune(word)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, r := range runes[1:] {
			if unicode.IsUpper(r) {
				return false
			}
		}
	}
	return true
}
