package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jsvoboda/shelfscan/internal/database"
	"github.com/jsvoboda/shelfscan/internal/database/mock"
	"github.com/jsvoboda/shelfscan/internal/enrich"
)

type stubEnricher struct {
	meta  enrich.Metadata
	err   error
	calls int
}

func (s *stubEnricher) Lookup(ctx context.Context, title, author string) (enrich.Metadata, error) {
	s.calls++
	return s.meta, s.err
}

const testUser = "user-1"

func TestAddTitleStoresBook(t *testing.T) {
	store := mock.NewBookStore()
	enricher := &stubEnricher{meta: enrich.Metadata{
		Author: "Frank Herbert",
		Genres: []string{"Science Fiction"},
		Found:  true,
	}}
	svc := NewService(store, enricher, 0)

	result, err := svc.AddTitle(context.Background(), testUser, "dune", "", "", "")
	if err != nil {
		t.Fatalf("AddTitle() error: %v", err)
	}
	if result.Duplicate {
		t.Fatal("unexpected duplicate")
	}
	if result.Book.Title != "Dune" {
		t.Errorf("Title = %q, want Dune", result.Book.Title)
	}
	if result.Book.Author != "Frank Herbert" {
		t.Errorf("Author = %q", result.Book.Author)
	}
	if result.Book.Shelf != database.ShelfLibrary {
		t.Errorf("Shelf = %q, want default library", result.Book.Shelf)
	}

	count, _ := store.Count(context.Background(), testUser)
	if count != 1 {
		t.Errorf("stored %d books, want 1", count)
	}
}

func TestAddTitleRejectsDuplicates(t *testing.T) {
	store := mock.NewBookStore()
	svc := NewService(store, nil, 0)
	ctx := context.Background()

	if _, err := svc.AddTitle(ctx, testUser, "The Great Gatsby", "", database.ShelfLibrary, ""); err != nil {
		t.Fatalf("first AddTitle() error: %v", err)
	}

	result, err := svc.AddTitle(ctx, testUser, "the great gatsby!", "", database.ShelfLibrary, "")
	if err != nil {
		t.Fatalf("second AddTitle() error: %v", err)
	}
	if !result.Duplicate {
		t.Fatal("expected duplicate")
	}
	if result.Book != nil {
		t.Error("duplicate add must not return a stored book")
	}
	if result.Match.MatchedTitle != "The Great Gatsby" {
		t.Errorf("MatchedTitle = %q", result.Match.MatchedTitle)
	}

	count, _ := store.Count(ctx, testUser)
	if count != 1 {
		t.Errorf("stored %d books, want 1", count)
	}
}

func TestAddTitleScopesDuplicatesToUser(t *testing.T) {
	store := mock.NewBookStore()
	svc := NewService(store, nil, 0)
	ctx := context.Background()

	if _, err := svc.AddTitle(ctx, "alice", "Dune", "", "", ""); err != nil {
		t.Fatalf("AddTitle() error: %v", err)
	}
	result, err := svc.AddTitle(ctx, "bob", "Dune", "", "", "")
	if err != nil {
		t.Fatalf("AddTitle() error: %v", err)
	}
	if result.Duplicate {
		t.Error("another user's book must not count as a duplicate")
	}
}

func TestAddTitleSurvivesEnrichmentFailure(t *testing.T) {
	store := mock.NewBookStore()
	enricher := &stubEnricher{err: errors.New("api down")}
	svc := NewService(store, enricher, 0)

	result, err := svc.AddTitle(context.Background(), testUser, "Dune", "", "", "")
	if err != nil {
		t.Fatalf("AddTitle() error: %v", err)
	}
	if result.Book == nil {
		t.Fatal("book not stored")
	}
	if result.Book.Author != "" || len(result.Book.Genres) != 0 {
		t.Errorf("expected empty metadata, got %+v", result.Book)
	}
}

func TestAddTitleKeepsProvidedAuthor(t *testing.T) {
	store := mock.NewBookStore()
	enricher := &stubEnricher{meta: enrich.Metadata{Author: "Someone Else", Found: true}}
	svc := NewService(store, enricher, 0)

	result, err := svc.AddTitle(context.Background(), testUser, "Dune", "Frank Herbert", "", "")
	if err != nil {
		t.Fatalf("AddTitle() error: %v", err)
	}
	if result.Book.Author != "Frank Herbert" {
		t.Errorf("Author = %q, want user-provided name", result.Book.Author)
	}
}

func TestAddTitleValidation(t *testing.T) {
	svc := NewService(mock.NewBookStore(), nil, 0)
	ctx := context.Background()

	if _, err := svc.AddTitle(ctx, testUser, "   ", "", "", ""); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("blank title error = %v, want ErrEmptyTitle", err)
	}
	if _, err := svc.AddTitle(ctx, testUser, "Dune", "", "attic", ""); err == nil {
		t.Error("expected error for unknown shelf")
	}
}

func TestMoveShelf(t *testing.T) {
	store := mock.NewBookStore()
	svc := NewService(store, nil, 0)
	ctx := context.Background()

	added, err := svc.AddTitle(ctx, testUser, "Dune", "", database.ShelfWishlist, "")
	if err != nil {
		t.Fatalf("AddTitle() error: %v", err)
	}

	moved, err := svc.MoveShelf(ctx, testUser, added.Book.ID, database.ShelfLibrary)
	if err != nil {
		t.Fatalf("MoveShelf() error: %v", err)
	}
	if moved.Shelf != database.ShelfLibrary {
		t.Errorf("Shelf = %q", moved.Shelf)
	}

	if _, err := svc.MoveShelf(ctx, testUser, "no-such-id", database.ShelfLibrary); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("missing book error = %v, want ErrNotFound", err)
	}
	if _, err := svc.MoveShelf(ctx, testUser, added.Book.ID, "attic"); err == nil {
		t.Error("expected error for unknown shelf")
	}
}

func TestEvaluate(t *testing.T) {
	store := mock.NewBookStore()
	svc := NewService(store, nil, 0)
	ctx := context.Background()

	if _, err := svc.AddTitle(ctx, testUser, "The Hobbit", "", "", ""); err != nil {
		t.Fatalf("AddTitle() error: %v", err)
	}

	candidates, err := svc.Evaluate(ctx, testUser, []string{"The Hobbit", "Dune"})
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates", len(candidates))
	}
	if !candidates[0].Match.IsDuplicate {
		t.Error("The Hobbit should match the existing entry")
	}
	if candidates[1].Match.IsDuplicate {
		t.Error("Dune should not match")
	}
}

func TestBackfill(t *testing.T) {
	store := mock.NewBookStore()
	svc := NewService(store, nil, 0)
	ctx := context.Background()

	// One complete book, two needing metadata.
	enricher := &stubEnricher{meta: enrich.Metadata{
		Author: "Resolved Author",
		Genres: []string{"Fantasy"},
		Found:  true,
	}}
	full := NewService(store, enricher, 0)

	if _, err := full.AddTitle(ctx, testUser, "Complete Book", "Known Author", "", ""); err != nil {
		t.Fatalf("AddTitle() error: %v", err)
	}
	enrichCallsAfterSetup := enricher.calls

	if _, err := svc.AddTitle(ctx, testUser, "The Missing Author", "", "", ""); err != nil {
		t.Fatalf("AddTitle() error: %v", err)
	}
	if _, err := svc.AddTitle(ctx, testUser, "Another Bare Book", "", "", ""); err != nil {
		t.Fatalf("AddTitle() error: %v", err)
	}

	var lastDone, lastTotal int
	updated, err := full.Backfill(ctx, testUser, func(done, total int) {
		lastDone, lastTotal = done, total
	})
	if err != nil {
		t.Fatalf("Backfill() error: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2", updated)
	}
	if enricher.calls-enrichCallsAfterSetup != 2 {
		t.Errorf("enricher called %d times, want 2", enricher.calls-enrichCallsAfterSetup)
	}
	if lastDone != 3 || lastTotal != 3 {
		t.Errorf("progress ended at %d/%d, want 3/3", lastDone, lastTotal)
	}

	books, _ := store.List(ctx, testUser, "")
	for _, book := range books {
		if book.Author == "" {
			t.Errorf("book %q still missing author", book.Title)
		}
	}
}

func TestBackfillWithoutEnricher(t *testing.T) {
	svc := NewService(mock.NewBookStore(), nil, 0)
	if _, err := svc.Backfill(context.Background(), testUser, nil); err == nil {
		t.Error("expected error when no enricher is configured")
	}
}
