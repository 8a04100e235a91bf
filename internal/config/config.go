// Package config loads application configuration from environment
// variables and the embedded genre table.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed genres.yaml
var genresYaml []byte

type Config struct {
	OpenLibrary OpenLibraryConfig
	OpenAI      OpenAIConfig
	Gemini      GeminiConfig
	OCR         OCRConfig
	Database    DatabaseConfig
	Enrich      EnrichConfig
	Genres      GenresConfig
}

type OpenLibraryConfig struct {
	URL string
}

type OpenAIConfig struct {
	Token string
}

type GeminiConfig struct {
	APIKey string
}

type OCRConfig struct {
	Provider string
}

type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

type EnrichConfig struct {
	LookupTimeout time.Duration
	CacheTTL      time.Duration
	BackfillDelay time.Duration
}

// GenresConfig maps lowercase OpenLibrary subject names to canonical
// display genres.
type GenresConfig struct {
	Subjects map[string]string `yaml:"subjects"`
}

// Load reads configuration from environment variables. The embedded genre
// table ships with the binary so a parse failure is a build defect.
func Load() (*Config, error) {
	var genres GenresConfig
	if err := yaml.Unmarshal(genresYaml, &genres); err != nil {
		panic(fmt.Sprintf("could not parse embedded genres.yaml: %v", err))
	}

	cfg := &Config{
		OpenLibrary: OpenLibraryConfig{
			URL: envString("OPENLIBRARY_URL", "https://openlibrary.org"),
		},
		OpenAI: OpenAIConfig{
			Token: os.Getenv("OPENAI_TOKEN"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		OCR: OCRConfig{
			Provider: envString("OCR_PROVIDER", "openai"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Enrich: EnrichConfig{
			LookupTimeout: envDuration("ENRICH_LOOKUP_TIMEOUT", 30*time.Second),
			CacheTTL:      envDuration("ENRICH_CACHE_TTL", 7*24*time.Hour),
			BackfillDelay: envDuration("ENRICH_BACKFILL_DELAY", 500*time.Millisecond),
		},
		Genres: genres,
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
