package match

import "testing"

func TestIsDuplicateExactMatch(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		existing []string
		expected bool
	}{
		{"identical", "Dune", []string{"Dune"}, true},
		{"case insensitive", "dune", []string{"DUNE"}, true},
		{"punctuation ignored", "Dune!", []string{"Dune"}, true},
		{"different short titles", "Dune", []string{"Dune Messiah"}, false},
		{"empty collection", "Dune", nil, false},
		{"match anywhere in collection", "Dune", []string{"Foundation", "Hyperion", "Dune"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicate(tt.title, tt.existing); got != tt.expected {
				t.Errorf("IsDuplicate(%q, %v) = %v, want %v", tt.title, tt.existing, got, tt.expected)
			}
		})
	}
}

func TestIsDuplicateShortTitleGuard(t *testing.T) {
	// Normalized titles shorter than 3 characters can never be duplicates,
	// even against an identical entry.
	tests := []struct {
		title    string
		existing []string
	}{
		{"It", []string{"It"}},
		{"", []string{""}},
		{"!!", []string{"!!"}},
		{"a", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		if IsDuplicate(tt.title, tt.existing) {
			t.Errorf("IsDuplicate(%q, %v) = true, want false for short title", tt.title, tt.existing)
		}
	}
}

func TestIsDuplicateWordOverlap(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		existing []string
		expected bool
	}{
		{"dropped article", "The Great Gatsby", []string{"Great Gatsby"}, true},
		{"reversed direction", "Great Gatsby", []string{"The Great Gatsby"}, true},
		{"unrelated long titles", "The Catcher in the Rye", []string{"One Hundred Years of Solitude"}, false},
		{"shared words below ratio", "The Silent Patient", []string{"The Silent World of Nicholas Quinn"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicate(tt.title, tt.existing); got != tt.expected {
				t.Errorf("IsDuplicate(%q, %v) = %v, want %v", tt.title, tt.existing, got, tt.expected)
			}
		})
	}
}

func TestIsDuplicateSubstringContainment(t *testing.T) {
	// One normalized title embedded in the other counts only when the
	// shorter side is longer than 15 characters.
	if !IsDuplicate("The Count of Monte Cristo", []string{"Count of Monte Cristo"}) {
		t.Error("expected long substring containment to be a duplicate")
	}
	if IsDuplicate("Emma", []string{"Emma and the Werewolves of London"}) {
		t.Error("short title contained in long one must not be a duplicate")
	}
}

func TestIsDuplicateSimilarityTiers(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		existing []string
		expected bool
	}{
		{
			"ocr typo in long title",
			"Harry Poter and the Chamber of Secrets",
			[]string{"Harry Potter and the Chamber of Secrets"},
			true,
		},
		{
			"one-letter typo in short title",
			"The Hobit",
			[]string{"The Hobbit"},
			true, // 0.9 similarity, short tier threshold is 0.75
		},
		{
			"clearly different short titles",
			"The Road",
			[]string{"The Stand"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicate(tt.title, tt.existing); got != tt.expected {
				t.Errorf("IsDuplicate(%q, %v) = %v, want %v", tt.title, tt.existing, got, tt.expected)
			}
		})
	}
}

func TestIsDuplicateRoundTrip(t *testing.T) {
	// Adding the same title twice: the second add must see the first as a
	// duplicate, for any title of normalized length >= 3.
	titles := []string{"Dune", "The Great Gatsby", "1984 Revisited", "War and Peace"}
	var shelf []string
	for _, title := range titles {
		if IsDuplicate(title, shelf) {
			t.Errorf("fresh title %q flagged as duplicate of %v", title, shelf)
		}
		shelf = append(shelf, title)
		if !IsDuplicate(title, shelf) {
			t.Errorf("repeated title %q not flagged as duplicate", title)
		}
	}
}

func TestFindBestMatch(t *testing.T) {
	existing := []string{"Foundation", "Dune Messiah", "The Hobbit"}

	t.Run("close match reported", func(t *testing.T) {
		result := FindBestMatch("The Hobit", existing)
		if result.MatchedIndex != 2 {
			t.Fatalf("MatchedIndex = %d, want 2", result.MatchedIndex)
		}
		if result.MatchedTitle != "The Hobbit" {
			t.Errorf("MatchedTitle = %q, want %q", result.MatchedTitle, "The Hobbit")
		}
		if result.Similarity <= 0.75 {
			t.Errorf("Similarity = %f, want > 0.75", result.Similarity)
		}
		if !result.IsDuplicate {
			t.Error("expected IsDuplicate = true")
		}
	})

	t.Run("no match above threshold", func(t *testing.T) {
		result := FindBestMatch("Pride and Prejudice", existing)
		if result.MatchedIndex != -1 {
			t.Errorf("MatchedIndex = %d, want -1", result.MatchedIndex)
		}
		if result.IsDuplicate {
			t.Error("expected IsDuplicate = false")
		}
	})

	t.Run("advisory match is not a duplicate verdict", func(t *testing.T) {
		// A best match can exist while the tiered duplicate logic says no;
		// the two thresholds are intentionally different.
		result := FindBestMatch("Pride and Prejudice", []string{"Pride and Prejudice"})
		if !result.IsDuplicate || result.MatchedIndex != 0 {
			t.Errorf("exact entry: got %+v", result)
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		result := FindBestMatch("Dune", nil)
		if result.MatchedIndex != -1 || result.IsDuplicate {
			t.Errorf("got %+v, want no match", result)
		}
	})
}
