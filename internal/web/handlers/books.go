package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsvoboda/shelfscan/internal/catalog"
	"github.com/jsvoboda/shelfscan/internal/database"
	"github.com/jsvoboda/shelfscan/internal/match"
	"github.com/jsvoboda/shelfscan/internal/web/middleware"
)

// BooksHandler handles catalog endpoints.
type BooksHandler struct {
	books   database.BookStore
	catalog *catalog.Service
}

// NewBooksHandler creates a new books handler.
func NewBooksHandler(books database.BookStore, svc *catalog.Service) *BooksHandler {
	return &BooksHandler{
		books:   books,
		catalog: svc,
	}
}

func userID(r *http.Request) string {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		return ""
	}
	return session.UserID
}

// List returns the caller's books, optionally filtered by shelf.
func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	shelf := database.Shelf(r.URL.Query().Get("shelf"))
	if shelf != "" && !database.ValidShelf(shelf) {
		respondError(w, http.StatusBadRequest, "unknown shelf")
		return
	}

	books, err := h.books.List(r.Context(), userID(r), shelf)
	if err != nil {
		log.Printf("could not list books: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list books")
		return
	}
	if books == nil {
		books = []database.Book{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"books": books,
		"count": len(books),
	})
}

// createBookRequest is the payload for adding a book manually.
type createBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Shelf       string `json:"shelf"`
	SourceImage string `json:"source_image"`
}

// Create adds a title to the caller's catalog. Duplicates are rejected with
// a 409 carrying the match details.
func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	result, err := h.catalog.AddTitle(r.Context(), userID(r), req.Title, req.Author,
		database.Shelf(req.Shelf), req.SourceImage)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyTitle) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("could not add book %s: %v", sanitizeForLog(req.Title), err)
		respondError(w, http.StatusInternalServerError, "failed to add book")
		return
	}

	if result.Duplicate {
		respondJSON(w, http.StatusConflict, result)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// Get returns a single book.
func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.Get(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		log.Printf("could not load book: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load book")
		return
	}
	if book == nil {
		respondError(w, http.StatusNotFound, "book not found")
		return
	}
	respondJSON(w, http.StatusOK, book)
}

// updateBookRequest carries editable book fields.
type updateBookRequest struct {
	Title  *string   `json:"title"`
	Author *string   `json:"author"`
	Genres *[]string `json:"genres"`
	Shelf  *string   `json:"shelf"`
}

// Update edits a book's fields. Only provided fields change.
func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	book, err := h.books.Get(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		log.Printf("could not load book: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load book")
		return
	}
	if book == nil {
		respondError(w, http.StatusNotFound, "book not found")
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			respondError(w, http.StatusBadRequest, "title must not be empty")
			return
		}
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Genres != nil {
		book.Genres = *req.Genres
	}
	if req.Shelf != nil {
		shelf := database.Shelf(*req.Shelf)
		if !database.ValidShelf(shelf) {
			respondError(w, http.StatusBadRequest, "unknown shelf")
			return
		}
		book.Shelf = shelf
	}

	if err := h.books.Update(r.Context(), book); err != nil {
		log.Printf("could not update book: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to update book")
		return
	}
	respondJSON(w, http.StatusOK, book)
}

// Delete removes a book.
func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.books.Delete(r.Context(), chi.URLParam(r, "id"), userID(r))
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "book not found")
		return
	}
	if err != nil {
		log.Printf("could not delete book: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to delete book")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// moveShelfRequest names the destination shelf.
type moveShelfRequest struct {
	Shelf string `json:"shelf"`
}

// MoveShelf moves a book between library and wishlist.
func (h *BooksHandler) MoveShelf(w http.ResponseWriter, r *http.Request) {
	var req moveShelfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	book, err := h.catalog.MoveShelf(r.Context(), userID(r), chi.URLParam(r, "id"), database.Shelf(req.Shelf))
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "book not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, book)
}

// checkDuplicateRequest is the payload for a duplicate pre-check.
type checkDuplicateRequest struct {
	Title string `json:"title"`
}

// CheckDuplicate reports how a title matches against the caller's catalog
// without storing anything.
func (h *BooksHandler) CheckDuplicate(w http.ResponseWriter, r *http.Request) {
	var req checkDuplicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	titles, err := h.books.Titles(r.Context(), userID(r))
	if err != nil {
		log.Printf("could not load titles: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load titles")
		return
	}

	respondJSON(w, http.StatusOK, match.FindBestMatch(req.Title, titles))
}
