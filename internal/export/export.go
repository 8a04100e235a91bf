// Package export writes a user's catalog to portable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jsvoboda/shelfscan/internal/database"
)

// csvHeader is the column layout for CSV exports.
var csvHeader = []string{"title", "author", "genres", "shelf", "added_at"}

// WriteCSV writes books as CSV with a header row. Genres are joined with
// semicolons so the file stays one row per book.
func WriteCSV(w io.Writer, books []database.Book) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, book := range books {
		record := []string{
			book.Title,
			book.Author,
			strings.Join(book.Genres, "; "),
			string(book.Shelf),
			book.AddedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteJSON writes books as an indented JSON array.
func WriteJSON(w io.Writer, books []database.Book) error {
	if books == nil {
		books = []database.Book{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(books); err != nil {
		return fmt.Errorf("encode books: %w", err)
	}
	return nil
}
