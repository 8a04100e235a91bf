package match

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "The Great Gatsby", "the great gatsby"},
		{"strips punctuation", "Harry Potter & the Philosopher's Stone!", "harry potter the philosophers stone"},
		{"collapses whitespace", "  War   and\tPeace  ", "war and peace"},
		{"empty string", "", ""},
		{"punctuation only", "!!! ???", ""},
		{"keeps digits", "Fahrenheit 451", "fahrenheit 451"},
		{"keeps unicode letters", "Café du Monde", "café du monde"},
		{"keeps underscores", "foo_bar", "foo_bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"The Great Gatsby",
		"  Mixed   CASE with!!! punctuation  ",
		"", "a", "1984", "Les Misérables",
	}
	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", s, once, twice)
		}
	}
}
