package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsvoboda/shelfscan/internal/database"
	"github.com/jsvoboda/shelfscan/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as CSV or JSON",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("user", "", "Username owning the catalog")
	exportCmd.Flags().String("format", "csv", "Output format (csv or json)")
	exportCmd.Flags().String("shelf", "", "Limit to one shelf (library or wishlist)")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	_, books, users, err := initBackend()
	if err != nil {
		return err
	}

	user, err := resolveUser(cmd.Context(), users, mustGetString(cmd, "user"))
	if err != nil {
		return err
	}

	shelf := database.Shelf(mustGetString(cmd, "shelf"))
	if shelf != "" && !database.ValidShelf(shelf) {
		return fmt.Errorf("unknown shelf %q", shelf)
	}

	entries, err := books.List(cmd.Context(), user.ID, shelf)
	if err != nil {
		return err
	}

	out := os.Stdout
	if path := mustGetString(cmd, "output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch format := mustGetString(cmd, "format"); format {
	case "csv":
		return export.WriteCSV(out, entries)
	case "json":
		return export.WriteJSON(out, entries)
	default:
		return fmt.Errorf("unknown format %q, use csv or json", format)
	}
}
