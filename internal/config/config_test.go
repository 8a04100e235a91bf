package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.OpenLibrary.URL != "https://openlibrary.org" {
		t.Errorf("OpenLibrary.URL = %q", cfg.OpenLibrary.URL)
	}
	if cfg.OCR.Provider != "openai" {
		t.Errorf("OCR.Provider = %q", cfg.OCR.Provider)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("MaxOpenConns = %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Enrich.CacheTTL != 7*24*time.Hour {
		t.Errorf("CacheTTL = %v", cfg.Enrich.CacheTTL)
	}
	if cfg.Enrich.BackfillDelay != 500*time.Millisecond {
		t.Errorf("BackfillDelay = %v", cfg.Enrich.BackfillDelay)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENLIBRARY_URL", "http://localhost:9999")
	t.Setenv("OCR_PROVIDER", "gemini")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "3")
	t.Setenv("ENRICH_LOOKUP_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.OpenLibrary.URL != "http://localhost:9999" {
		t.Errorf("OpenLibrary.URL = %q", cfg.OpenLibrary.URL)
	}
	if cfg.OCR.Provider != "gemini" {
		t.Errorf("OCR.Provider = %q", cfg.OCR.Provider)
	}
	if cfg.Database.MaxOpenConns != 3 {
		t.Errorf("MaxOpenConns = %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Enrich.LookupTimeout != 5*time.Second {
		t.Errorf("LookupTimeout = %v", cfg.Enrich.LookupTimeout)
	}
}

func TestLoadBadEnvFallsBack(t *testing.T) {
	t.Setenv("DATABASE_MAX_IDLE_CONNS", "not-a-number")
	t.Setenv("ENRICH_CACHE_TTL", "forever")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Database.MaxIdleConns != 5 {
		t.Errorf("MaxIdleConns = %d, want fallback 5", cfg.Database.MaxIdleConns)
	}
	if cfg.Enrich.CacheTTL != 7*24*time.Hour {
		t.Errorf("CacheTTL = %v, want fallback", cfg.Enrich.CacheTTL)
	}
}

func TestGenreTableLoaded(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Genres.Subjects) == 0 {
		t.Fatal("embedded genre table is empty")
	}
	if got := cfg.Genres.Subjects["sci-fi"]; got != "Science Fiction" {
		t.Errorf("Subjects[sci-fi] = %q, want Science Fiction", got)
	}
	if got := cfg.Genres.Subjects["dystopia"]; got != "Dystopian" {
		t.Errorf("Subjects[dystopia] = %q, want Dystopian", got)
	}
}
