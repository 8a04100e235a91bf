// Package catalog coordinates duplicate detection, metadata enrichment and
// storage for a user's bookshelf.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jsvoboda/shelfscan/internal/database"
	"github.com/jsvoboda/shelfscan/internal/enrich"
	"github.com/jsvoboda/shelfscan/internal/match"
)

// ErrEmptyTitle is returned when a title is blank after trimming.
var ErrEmptyTitle = errors.New("title must not be empty")

// Enricher resolves a title to book metadata.
type Enricher interface {
	Lookup(ctx context.Context, title, author string) (enrich.Metadata, error)
}

var titleCaser = cases.Title(language.English)

// Service is the catalog coordinator.
type Service struct {
	books    database.BookStore
	enricher Enricher
	delay    time.Duration
}

// NewService creates a coordinator. The enricher may be nil, in which case
// books are stored without metadata. The delay paces backfill lookups.
func NewService(books database.BookStore, enricher Enricher, delay time.Duration) *Service {
	return &Service{
		books:    books,
		enricher: enricher,
		delay:    delay,
	}
}

// AddResult reports the outcome of an AddTitle call. When Duplicate is true
// the book was not stored and Match describes the existing entry.
type AddResult struct {
	Book      *database.Book    `json:"book,omitempty"`
	Duplicate bool              `json:"duplicate"`
	Match     match.MatchResult `json:"match"`
}

// AddTitle adds a title to a user's shelf unless it duplicates an existing
// entry. Metadata enrichment is best effort: lookup failures leave author
// and genres empty rather than failing the add.
func (s *Service) AddTitle(ctx context.Context, userID, title, author string, shelf database.Shelf, sourceImage string) (*AddResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if shelf == "" {
		shelf = database.ShelfLibrary
	}
	if !database.ValidShelf(shelf) {
		return nil, fmt.Errorf("unknown shelf %q", shelf)
	}

	existing, err := s.books.Titles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not load existing titles: %w", err)
	}

	result := match.FindBestMatch(title, existing)
	if result.IsDuplicate {
		return &AddResult{Duplicate: true, Match: result}, nil
	}

	book := &database.Book{
		UserID:      userID,
		Title:       displayTitle(title),
		Author:      strings.TrimSpace(author),
		Shelf:       shelf,
		SourceImage: sourceImage,
	}

	if s.enricher != nil {
		meta, err := s.enricher.Lookup(ctx, title, book.Author)
		if err != nil {
			log.Printf("enrichment failed for %q: %v", title, err)
		} else if meta.Found {
			if book.Author == "" {
				book.Author = meta.Author
			}
			book.Genres = meta.Genres
		}
	}

	if err := s.books.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("could not store book: %w", err)
	}

	return &AddResult{Book: book, Match: result}, nil
}

// MoveShelf moves a book between the library and the wishlist.
func (s *Service) MoveShelf(ctx context.Context, userID, bookID string, shelf database.Shelf) (*database.Book, error) {
	if !database.ValidShelf(shelf) {
		return nil, fmt.Errorf("unknown shelf %q", shelf)
	}

	book, err := s.books.Get(ctx, bookID, userID)
	if err != nil {
		return nil, fmt.Errorf("could not load book: %w", err)
	}
	if book == nil {
		return nil, database.ErrNotFound
	}
	if book.Shelf == shelf {
		return book, nil
	}

	book.Shelf = shelf
	if err := s.books.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("could not move book: %w", err)
	}
	return book, nil
}

// Candidate is a scanned title annotated with its match against the user's
// existing catalog.
type Candidate struct {
	Title string            `json:"title"`
	Match match.MatchResult `json:"match"`
}

// Evaluate annotates extracted titles with duplicate information so the
// client can offer only new books for adding.
func (s *Service) Evaluate(ctx context.Context, userID string, titles []string) ([]Candidate, error) {
	existing, err := s.books.Titles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not load existing titles: %w", err)
	}

	candidates := make([]Candidate, 0, len(titles))
	for _, title := range titles {
		candidates = append(candidates, Candidate{
			Title: title,
			Match: match.FindBestMatch(title, existing),
		})
	}
	return candidates, nil
}

// Backfill fills in missing authors and genres for a user's existing books.
// Lookups are paced by the configured delay. The progress callback, when not
// nil, is invoked after each processed book.
func (s *Service) Backfill(ctx context.Context, userID string, progress func(done, total int)) (int, error) {
	if s.enricher == nil {
		return 0, errors.New("no enricher configured")
	}

	books, err := s.books.List(ctx, userID, "")
	if err != nil {
		return 0, fmt.Errorf("could not list books: %w", err)
	}

	updated := 0
	for i, book := range books {
		if book.Author != "" && len(book.Genres) > 0 {
			if progress != nil {
				progress(i+1, len(books))
			}
			continue
		}

		if i > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
				return updated, ctx.Err()
			case <-time.After(s.delay):
			}
		}

		meta, err := s.enricher.Lookup(ctx, book.Title, book.Author)
		if err != nil {
			log.Printf("backfill lookup failed for %q: %v", book.Title, err)
			if progress != nil {
				progress(i+1, len(books))
			}
			continue
		}
		if !meta.Found {
			if progress != nil {
				progress(i+1, len(books))
			}
			continue
		}

		changed := false
		if book.Author == "" && meta.Author != "" {
			book.Author = meta.Author
			changed = true
		}
		if len(book.Genres) == 0 && len(meta.Genres) > 0 {
			book.Genres = meta.Genres
			changed = true
		}
		if changed {
			if err := s.books.Update(ctx, &book); err != nil {
				log.Printf("backfill update failed for %q: %v", book.Title, err)
			} else {
				updated++
			}
		}
		if progress != nil {
			progress(i+1, len(books))
		}
	}

	return updated, nil
}

// displayTitle normalizes the casing of titles that arrive all-lower or
// all-upper, and leaves mixed-case titles untouched.
func displayTitle(title string) string {
	if title == strings.ToLower(title) || title == strings.ToUpper(title) {
		return titleCaser.String(strings.ToLower(title))
	}
	return title
}
