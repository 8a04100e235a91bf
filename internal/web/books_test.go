package web

import (
	"net/http"
	"testing"

	"github.com/jsvoboda/shelfscan/internal/database"
)

func addBook(t *testing.T, srv *Server, cookies []*http.Cookie, title, shelf string) database.Book {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/books", map[string]string{
		"title": title,
		"shelf": shelf,
	}, cookies)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create book returned %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Book database.Book `json:"book"`
	}
	decodeBody(t, rec, &result)
	return result.Book
}

func TestCreateAndListBooks(t *testing.T) {
	srv := newTestServer(t, nil)
	cookies := register(t, srv, "alice")

	addBook(t, srv, cookies, "Dune", "library")
	addBook(t, srv, cookies, "The Hobbit", "wishlist")

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/books", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("list returned %d", rec.Code)
	}
	var list struct {
		Books []database.Book `json:"books"`
		Count int             `json:"count"`
	}
	decodeBody(t, rec, &list)
	if list.Count != 2 {
		t.Errorf("count = %d, want 2", list.Count)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/books?shelf=wishlist", nil, cookies)
	decodeBody(t, rec, &list)
	if list.Count != 1 || list.Books[0].Title != "The Hobbit" {
		t.Errorf("wishlist = %+v", list)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/books?shelf=attic", nil, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown shelf returned %d", rec.Code)
	}
}

func TestCreateDuplicateBook(t *testing.T) {
	srv := newTestServer(t, nil)
	cookies := register(t, srv, "alice")

	addBook(t, srv, cookies, "The Great Gatsby", "library")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/books", map[string]string{
		"title": "the great gatsby",
	}, cookies)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate returned %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Duplicate bool `json:"duplicate"`
		Match     struct {
			IsDuplicate  bool   `json:"is_duplicate"`
			MatchedTitle string `json:"matched_title"`
		} `json:"match"`
	}
	decodeBody(t, rec, &result)
	if !result.Duplicate || !result.Match.IsDuplicate {
		t.Errorf("result = %+v", result)
	}
	if result.Match.MatchedTitle != "The Great Gatsby" {
		t.Errorf("matched title = %q", result.Match.MatchedTitle)
	}
}

func TestBooksAreScopedToUser(t *testing.T) {
	srv := newTestServer(t, nil)
	alice := register(t, srv, "alice")
	bob := register(t, srv, "bob")

	book := addBook(t, srv, alice, "Dune", "library")

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/books/"+book.ID, nil, bob)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user get returned %d", rec.Code)
	}

	// Bob can add the same title without hitting Alice's entry.
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/books", map[string]string{"title": "Dune"}, bob)
	if rec.Code != http.StatusCreated {
		t.Errorf("bob's add returned %d", rec.Code)
	}
}

func TestUpdateBook(t *testing.T) {
	srv := newTestServer(t, nil)
	cookies := register(t, srv, "alice")
	book := addBook(t, srv, cookies, "Dune", "library")

	rec := doJSON(t, srv, http.MethodPut, "/api/v1/books/"+book.ID, map[string]any{
		"author": "Frank Herbert",
		"genres": []string{"Science Fiction"},
	}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", rec.Code, rec.Body.String())
	}

	var updated database.Book
	decodeBody(t, rec, &updated)
	if updated.Author != "Frank Herbert" || len(updated.Genres) != 1 {
		t.Errorf("updated = %+v", updated)
	}
	if updated.Title != "Dune" {
		t.Errorf("title changed unexpectedly to %q", updated.Title)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/v1/books/"+book.ID, map[string]string{
		"shelf": "attic",
	}, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad shelf returned %d", rec.Code)
	}
}

func TestDeleteBook(t *testing.T) {
	srv := newTestServer(t, nil)
	cookies := register(t, srv, "alice")
	book := addBook(t, srv, cookies, "Dune", "library")

	rec := doJSON(t, srv, http.MethodDelete, "/api/v1/books/"+book.ID, nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete returned %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/books/"+book.ID, nil, cookies)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete returned %d", rec.Code)
	}
}

func TestMoveShelf(t *testing.T) {
	srv := newTestServer(t, nil)
	cookies := register(t, srv, "alice")
	book := addBook(t, srv, cookies, "Dune", "wishlist")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/books/"+book.ID+"/shelf", map[string]string{
		"shelf": "library",
	}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("move returned %d: %s", rec.Code, rec.Body.String())
	}

	var moved database.Book
	decodeBody(t, rec, &moved)
	if moved.Shelf != database.ShelfLibrary {
		t.Errorf("shelf = %q", moved.Shelf)
	}
}

func TestCheckDuplicate(t *testing.T) {
	srv := newTestServer(t, nil)
	cookies := register(t, srv, "alice")
	addBook(t, srv, cookies, "The Great Gatsby", "library")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/books/check", map[string]string{
		"title": "Great Gatsby",
	}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("check returned %d", rec.Code)
	}

	var result struct {
		IsDuplicate bool `json:"is_duplicate"`
	}
	decodeBody(t, rec, &result)
	if !result.IsDuplicate {
		t.Error("Great Gatsby should match The Great Gatsby")
	}
}
