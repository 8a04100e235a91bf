package postgres

import "github.com/jsvoboda/shelfscan/internal/database"

// RegisterBackend wires the PostgreSQL repositories into the database
// provider. Called once on startup after the pool is created.
func RegisterBackend(pool *Pool) {
	database.RegisterPostgresBackend(
		func() database.BookStore { return NewBookRepository(pool) },
		func() database.UserStore { return NewUserRepository(pool) },
	)
}
