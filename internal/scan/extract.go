// Package scan turns raw OCR output into plausible book titles and authors.
// All functions are pure: the same input always yields the same output.
package scan

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minTitleLength = 3
	maxTitleLength = 200
	maxTitleWords  = 15
	// Short all-caps lines are often legitimate cover titles; long all-caps
	// runs are usually OCR artifacts or headers.
	allCapsMaxLength = 10
)

var (
	noisePrefixRegex = regexp.MustCompile(`(?i)^(page\b|p\.|chapter\b|table of contents|index\b|copyright\b|isbn\b|©|®|™)`)
	romanNumberRegex = regexp.MustCompile(`(?i)^(\d+|[ivxlcdm]+)$`)
	dateRegex        = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-](\d{4}|\d{2})$`)
	isbnLineRegex    = regexp.MustCompile(`(?i)^(isbn|issn)[:\s]*[\d\sxX-]+$`)
	nonWordCharRegex = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	multiSpaceRegex  = regexp.MustCompile(`\s+`)
)

// linePredicate rejects a single trimmed OCR line. Returns true when the
// line should be kept. The predicates run in order and all must pass.
type linePredicate func(line string) bool

var titlePredicates = []linePredicate{
	hasAlphabetic,
	notLongAllCaps,
	lengthInRange,
	mostlyNonDigits,
	notNoisePrefix,
	wordCountInRange,
	alphabeticAfterStripping,
	notPageNumber,
	notDate,
	notISBNLine,
}

// ExtractTitles filters the lines of raw OCR text down to plausible book
// titles. The result preserves input order and contains no exact duplicates.
func ExtractTitles(rawText string) []string {
	var titles []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !keepLine(line) {
			continue
		}

		cleaned := cleanTitleLine(line)
		if seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		titles = append(titles, cleaned)
	}

	return titles
}

func keepLine(line string) bool {
	for _, pred := range titlePredicates {
		if !pred(line) {
			return false
		}
	}
	return true
}

// cleanTitleLine collapses whitespace and repairs the most common OCR
// misread: a pipe character standing in for a capital I.
func cleanTitleLine(line string) string {
	cleaned := multiSpaceRegex.ReplaceAllString(line, " ")
	cleaned = strings.ReplaceAll(cleaned, "|", "I")
	return strings.TrimSpace(cleaned)
}

func hasAlphabetic(line string) bool {
	return strings.ContainsFunc(line, unicode.IsLetter)
}

func notLongAllCaps(line string) bool {
	if utf8.RuneCountInString(line) < allCapsMaxLength {
		return true
	}
	// "All caps" requires the line to actually contain letters.
	return line != strings.ToUpper(line) || line == strings.ToLower(line)
}

func lengthInRange(line string) bool {
	n := utf8.RuneCountInString(line)
	return n >= minTitleLength && n < maxTitleLength
}

func mostlyNonDigits(line string) bool {
	digits := 0
	total := 0
	for _, r := range line {
		total++
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits*2 < total
}

func notNoisePrefix(line string) bool {
	return !noisePrefixRegex.MatchString(line)
}

func wordCountInRange(line string) bool {
	n := len(strings.Fields(line))
	return n >= 1 && n <= maxTitleWords
}

func alphabeticAfterStripping(line string) bool {
	stripped := nonWordCharRegex.ReplaceAllString(line, "")
	return strings.ContainsFunc(stripped, unicode.IsLetter)
}

func notPageNumber(line string) bool {
	return !romanNumberRegex.MatchString(line)
}

func notDate(line string) bool {
	return !dateRegex.MatchString(line)
}

func notISBNLine(line string) bool {
	return !isbnLineRegex.MatchString(line)
}
