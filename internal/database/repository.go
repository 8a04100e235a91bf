package database

import "context"

// BookReader provides read-only access to a user's catalog.
type BookReader interface {
	// Get retrieves a book by ID scoped to its owner, returns nil if not found.
	Get(ctx context.Context, id, userID string) (*Book, error)
	// List returns all of a user's books, newest first. An empty shelf
	// returns both shelves.
	List(ctx context.Context, userID string, shelf Shelf) ([]Book, error)
	// Titles returns the titles of all of a user's books across both
	// shelves, in insertion order. Used for duplicate detection.
	Titles(ctx context.Context, userID string) ([]string, error)
	// Count returns the number of books a user owns.
	Count(ctx context.Context, userID string) (int, error)
}

// BookWriter mutates a user's catalog.
type BookWriter interface {
	Create(ctx context.Context, book *Book) error
	// Update persists title, author, genres and shelf changes. Returns
	// ErrNotFound when the book does not exist or belongs to someone else.
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id, userID string) error
}

// UserStore manages local accounts.
type UserStore interface {
	Create(ctx context.Context, user *User) error
	// GetByUsername returns nil if no such user exists.
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
