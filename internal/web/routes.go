package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/jsvoboda/shelfscan/internal/web/handlers"
	"github.com/jsvoboda/shelfscan/internal/web/middleware"
)

func (s *Server) setupRoutes(sessionManager *middleware.SessionManager) {
	authHandler := handlers.NewAuthHandler(s.users, sessionManager)
	booksHandler := handlers.NewBooksHandler(s.books, s.catalog)
	scanHandler := handlers.NewScanHandler(s.provider, s.catalog)
	exportHandler := handlers.NewExportHandler(s.books)

	// Health check (no auth required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/status", authHandler.Status)

		// Everything below requires a session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(sessionManager))

			r.Get("/books", booksHandler.List)
			r.Post("/books", booksHandler.Create)
			r.Post("/books/check", booksHandler.CheckDuplicate)
			r.Get("/books/{id}", booksHandler.Get)
			r.Put("/books/{id}", booksHandler.Update)
			r.Delete("/books/{id}", booksHandler.Delete)
			r.Post("/books/{id}/shelf", booksHandler.MoveShelf)

			r.Post("/scan", scanHandler.Scan)

			r.Get("/export", exportHandler.Export)
		})
	})
}
