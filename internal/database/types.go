// Package database defines the storage types and repository interfaces for
// the book catalog. Concrete backends register themselves via provider.go.
package database

import "time"

// Shelf identifies which of the user's shelves a book sits on.
type Shelf string

const (
	ShelfLibrary  Shelf = "library"
	ShelfWishlist Shelf = "wishlist"
)

// ValidShelf reports whether s names a known shelf.
func ValidShelf(s Shelf) bool {
	return s == ShelfLibrary || s == ShelfWishlist
}

// Book is a single catalog entry owned by a user.
type Book struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Genres      []string  `json:"genres,omitempty"`
	Shelf       Shelf     `json:"shelf"`
	SourceImage string    `json:"source_image,omitempty"`
	AddedAt     time.Time `json:"added_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// User is a local account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
