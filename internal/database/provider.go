package database

import "fmt"

var (
	postgresBookStore   func() BookStore
	postgresUserStore   func() UserStore
	postgresInitialized bool
)

// BookStore combines catalog reads and writes. The PostgreSQL repository
// implements both halves with one type.
type BookStore interface {
	BookReader
	BookWriter
}

// RegisterPostgresBackend registers PostgreSQL repository constructors.
// This is called by the postgres package to avoid import cycles.
func RegisterPostgresBackend(books func() BookStore, users func() UserStore) {
	postgresBookStore = books
	postgresUserStore = users
	postgresInitialized = true
}

// IsInitialized returns whether the PostgreSQL backend has been initialized.
func IsInitialized() bool {
	return postgresInitialized
}

// GetBookStore returns the registered book store.
func GetBookStore() (BookStore, error) {
	if !postgresInitialized {
		return nil, fmt.Errorf("PostgreSQL backend not initialized: DATABASE_URL is required")
	}
	if postgresBookStore == nil {
		return nil, fmt.Errorf("PostgreSQL book store not registered")
	}
	return postgresBookStore(), nil
}

// GetUserStore returns the registered user store.
func GetUserStore() (UserStore, error) {
	if !postgresInitialized {
		return nil, fmt.Errorf("PostgreSQL backend not initialized: DATABASE_URL is required")
	}
	if postgresUserStore == nil {
		return nil, fmt.Errorf("PostgreSQL user store not registered")
	}
	return postgresUserStore(), nil
}
