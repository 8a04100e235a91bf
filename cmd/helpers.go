package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jsvoboda/shelfscan/internal/catalog"
	"github.com/jsvoboda/shelfscan/internal/config"
	"github.com/jsvoboda/shelfscan/internal/database"
	"github.com/jsvoboda/shelfscan/internal/database/postgres"
	"github.com/jsvoboda/shelfscan/internal/enrich"
	"github.com/jsvoboda/shelfscan/internal/openlibrary"
)

// initBackend loads configuration and connects the PostgreSQL backend.
func initBackend() (*config.Config, database.BookStore, database.UserStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not load config: %w", err)
	}
	if cfg.Database.URL == "" {
		return nil, nil, nil, errors.New("DATABASE_URL environment variable is required")
	}

	if err := postgres.Initialize(&cfg.Database); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}

	books, err := database.GetBookStore()
	if err != nil {
		return nil, nil, nil, err
	}
	users, err := database.GetUserStore()
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, books, users, nil
}

// newEnricher builds the Open Library enricher from configuration.
func newEnricher(cfg *config.Config) (*enrich.Enricher, error) {
	client, err := openlibrary.New(cfg.OpenLibrary.URL, cfg.Enrich.LookupTimeout)
	if err != nil {
		return nil, fmt.Errorf("could not create openlibrary client: %w", err)
	}
	cache := enrich.NewLookupCache(cfg.Enrich.CacheTTL)
	return enrich.New(client, cache, cfg.Genres.Subjects), nil
}

// newCatalogService wires the coordinator used by CLI commands.
func newCatalogService(cfg *config.Config, books database.BookStore) (*catalog.Service, error) {
	enricher, err := newEnricher(cfg)
	if err != nil {
		return nil, err
	}
	return catalog.NewService(books, enricher, cfg.Enrich.BackfillDelay), nil
}

// resolveUser maps the --user flag to an account.
func resolveUser(ctx context.Context, users database.UserStore, username string) (*database.User, error) {
	if username == "" {
		return nil, errors.New("--user is required")
	}
	user, err := users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("could not load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %q does not exist, register via the web API first", username)
	}
	return user, nil
}
