package enrich

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	maxGenres          = 5
	maxFallbackGenres  = 3
	maxFallbackSubject = 30
)

// genreKeywords mark subjects that are genre-like even when they do not
// appear in the canonical table.
var genreKeywords = []string{"fiction", "nonfiction", "novel", "story", "tale"}

var titleCaser = cases.Title(language.English)

// ExtractGenres distills Open Library subject strings into a short list of
// display genres. Subjects matching the canonical table map to their
// canonical names; keyword matches are Title-Cased as-is. When nothing
// matches, the first few short raw subjects are used so a book never comes
// back genre-less for want of table coverage.
func ExtractGenres(subjects []string, table map[string]string) []string {
	var genres []string
	seen := make(map[string]bool)

	add := func(genre string) {
		if genre == "" || seen[genre] {
			return
		}
		seen[genre] = true
		genres = append(genres, genre)
	}

	keys := sortedKeys(table)
	for _, subject := range subjects {
		if len(genres) >= maxGenres {
			break
		}
		lower := strings.ToLower(strings.TrimSpace(subject))
		if lower == "" {
			continue
		}
		if genre, ok := canonicalGenre(lower, table, keys); ok {
			add(genre)
			continue
		}
		if containsGenreKeyword(lower) {
			add(titleCaser.String(lower))
		}
	}

	if len(genres) > 0 {
		return genres
	}

	// Fallback: take the leading short subjects verbatim.
	for _, subject := range subjects {
		if len(genres) >= maxFallbackGenres {
			break
		}
		trimmed := strings.TrimSpace(subject)
		if trimmed == "" || utf8.RuneCountInString(trimmed) >= maxFallbackSubject {
			continue
		}
		add(titleCaser.String(strings.ToLower(trimmed)))
	}

	return genres
}

// canonicalGenre maps a lowercase subject to its canonical display name,
// first by exact key, then by substring containment against the longest
// keys first so "historical fiction" wins over "history".
func canonicalGenre(lower string, table map[string]string, keys []string) (string, bool) {
	if genre, ok := table[lower]; ok {
		return genre, true
	}
	for _, key := range keys {
		if strings.Contains(lower, key) {
			return table[key], true
		}
	}
	return "", false
}

func sortedKeys(table map[string]string) []string {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return keys
}

func containsGenreKeyword(lower string) bool {
	for _, keyword := range genreKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
