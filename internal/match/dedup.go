package match

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// Titles shorter than this (normalized) are OCR garbage, never duplicates.
	minMeaningfulLength = 3

	// Word-overlap and substring checks only make sense for longer titles.
	overlapMinLength    = 10
	overlapRatio        = 0.7
	substringMinShorter = 15

	// Similarity tiers: strict for any length, relaxed for short titles
	// where small edit distances represent large relative change.
	similarityThreshold      = 0.85
	shortTitleMaxLength      = 30
	shortSimilarityThreshold = 0.75

	// FindBestMatch reports the closest entry only above this score. This is
	// deliberately a flat threshold, looser than the tiered IsDuplicate
	// logic: best-match reporting is advisory, not a duplicate verdict.
	bestMatchThreshold = 0.75
)

// MatchResult describes the outcome of comparing a new title against an
// existing collection. MatchedIndex is -1 when no entry scored above the
// best-match threshold.
type MatchResult struct {
	IsDuplicate  bool    `json:"is_duplicate"`
	MatchedIndex int     `json:"-"`
	MatchedTitle string  `json:"matched_title,omitempty"`
	Similarity   float64 `json:"similarity,omitempty"`
}

// IsDuplicate reports whether newTitle refers to a book already present in
// existing. Rules are evaluated per existing entry, first hit wins:
// exact normalized equality, word overlap / substring containment for long
// titles, then tiered similarity thresholds. Titles whose normalized form is
// shorter than three characters are never duplicates, regardless of the
// collection contents.
func IsDuplicate(newTitle string, existing []string) bool {
	normalized := Normalize(newTitle)
	if utf8.RuneCountInString(normalized) < minMeaningfulLength {
		return false
	}

	for _, title := range existing {
		if titlesMatch(normalized, Normalize(title)) {
			return true
		}
	}
	return false
}

// FindBestMatch scans all existing entries and returns the one with the
// highest similarity to newTitle, provided that similarity exceeds 0.75.
// The IsDuplicate field carries the full tiered verdict; callers must not
// infer duplicate status from the advisory match alone.
func FindBestMatch(newTitle string, existing []string) MatchResult {
	result := MatchResult{
		IsDuplicate:  IsDuplicate(newTitle, existing),
		MatchedIndex: -1,
	}

	normalized := Normalize(newTitle)
	best := -1.0
	for i, title := range existing {
		score := Similarity(normalized, Normalize(title))
		if score > best {
			best = score
			if score > bestMatchThreshold {
				result.MatchedIndex = i
				result.MatchedTitle = title
				result.Similarity = score
			}
		}
	}
	return result
}

// titlesMatch applies the layered per-entry heuristics to two normalized
// titles.
func titlesMatch(a, b string) bool {
	if a == b {
		return true
	}

	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)

	if la > overlapMinLength && lb > overlapMinLength {
		if wordOverlapMatch(a, b) {
			return true
		}
		if containmentMatch(a, b, la, lb) {
			return true
		}
	}

	score := Similarity(a, b)
	if score > similarityThreshold {
		return true
	}
	if la < shortTitleMaxLength && lb < shortTitleMaxLength && score > shortSimilarityThreshold {
		return true
	}
	return false
}

// wordOverlapMatch catches article-dropping ("The Great Gatsby" vs
// "Great Gatsby") and minor OCR word splits. A word counts as overlapping
// when some word on the other side contains it or is contained by it.
func wordOverlapMatch(a, b string) bool {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) < 2 || len(wordsB) < 2 {
		return false
	}

	overlap := 0
	for _, wa := range wordsA {
		for _, wb := range wordsB {
			if strings.Contains(wb, wa) || strings.Contains(wa, wb) {
				overlap++
				break
			}
		}
	}

	required := int(math.Ceil(float64(min(len(wordsA), len(wordsB))) * overlapRatio))
	return overlap >= required
}

// containmentMatch treats one title embedded in the other as a duplicate,
// but only when the shorter side is long enough to not be a generic prefix.
func containmentMatch(a, b string, la, lb int) bool {
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return false
	}
	return min(la, lb) > substringMinShorter
}
