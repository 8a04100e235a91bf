package handlers

import (
	"log"
	"net/http"

	"github.com/jsvoboda/shelfscan/internal/database"
	"github.com/jsvoboda/shelfscan/internal/export"
)

// ExportHandler streams the caller's catalog as a download.
type ExportHandler struct {
	books database.BookReader
}

// NewExportHandler creates a new export handler.
func NewExportHandler(books database.BookReader) *ExportHandler {
	return &ExportHandler{books: books}
}

// Export writes the catalog in the requested format (csv or json, default
// json). The shelf query parameter narrows the export.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	shelf := database.Shelf(r.URL.Query().Get("shelf"))
	if shelf != "" && !database.ValidShelf(shelf) {
		respondError(w, http.StatusBadRequest, "unknown shelf")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	books, err := h.books.List(r.Context(), userID(r), shelf)
	if err != nil {
		log.Printf("could not list books for export: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load books")
		return
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="books.csv"`)
		if err := export.WriteCSV(w, books); err != nil {
			log.Printf("csv export failed: %v", err)
		}
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="books.json"`)
		if err := export.WriteJSON(w, books); err != nil {
			log.Printf("json export failed: %v", err)
		}
	default:
		respondError(w, http.StatusBadRequest, "unknown format, use csv or json")
	}
}
