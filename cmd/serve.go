package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsvoboda/shelfscan/internal/database/postgres"
	"github.com/jsvoboda/shelfscan/internal/ocr"
	"github.com/jsvoboda/shelfscan/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the ShelfScan web server. The server exposes a JSON API for
registering users, scanning shelf photos, managing the catalog and
exporting it.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
	serveCmd.Flags().String("session-secret", "", "Secret for signing session cookies")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")
	sessionSecret := mustGetString(cmd, "session-secret")

	if sessionSecret == "" {
		sessionSecret = os.Getenv("WEB_SESSION_SECRET")
	}
	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host, sessionSecret
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, books, users, err := initBackend()
	if err != nil {
		return err
	}
	fmt.Println("Using PostgreSQL backend")

	svc, err := newCatalogService(cfg, books)
	if err != nil {
		return err
	}

	// The server runs without OCR if no provider credentials are set.
	provider, err := ocr.FromConfig(cmd.Context(), cfg)
	if err != nil {
		fmt.Printf("Warning: OCR disabled: %v\n", err)
		provider = nil
	} else {
		fmt.Printf("OCR provider: %s\n", provider.Name())
	}

	sessionRepo := postgres.NewSessionRepository(postgres.GetGlobalPool())
	fmt.Println("Session persistence enabled (PostgreSQL)")

	port, host, sessionSecret := resolveServeHostPort(cmd)
	server := web.NewServer(books, users, svc, provider, port, host, sessionSecret, sessionRepo)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting ShelfScan API on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
