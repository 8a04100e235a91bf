// Package web hosts the HTTP API for the book catalog.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jsvoboda/shelfscan/internal/catalog"
	"github.com/jsvoboda/shelfscan/internal/database"
	"github.com/jsvoboda/shelfscan/internal/ocr"
	"github.com/jsvoboda/shelfscan/internal/web/middleware"
)

// Server represents the web server.
type Server struct {
	router         *chi.Mux
	httpServer     *http.Server
	sessionManager *middleware.SessionManager

	books    database.BookStore
	users    database.UserStore
	catalog  *catalog.Service
	provider ocr.Provider
}

// NewServer creates a new web server. The OCR provider may be nil, in which
// case the scan endpoint reports itself unavailable.
func NewServer(
	books database.BookStore,
	users database.UserStore,
	svc *catalog.Service,
	provider ocr.Provider,
	port int,
	host string,
	sessionSecret string,
	sessionRepo middleware.SessionRepository,
) *Server {
	r := chi.NewRouter()

	sessionManager := middleware.NewSessionManager(sessionSecret, sessionRepo)

	s := &Server{
		router:         r,
		sessionManager: sessionManager,
		books:          books,
		users:          users,
		catalog:        svc,
		provider:       provider,
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(2 * time.Minute))
	r.Use(middleware.CORS())

	s.setupRoutes(sessionManager)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // Long timeout for photo uploads
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
