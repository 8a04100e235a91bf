package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsvoboda/shelfscan/internal/database"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a book to the catalog",
	Long: `Add a single title to the catalog. The title is checked against
existing entries first and enriched with author and genre metadata from
Open Library when a match is found.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().String("user", "", "Username owning the catalog")
	addCmd.Flags().String("author", "", "Author name (skips author enrichment)")
	addCmd.Flags().String("shelf", "library", "Target shelf (library or wishlist)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")

	cfg, books, users, err := initBackend()
	if err != nil {
		return err
	}

	user, err := resolveUser(cmd.Context(), users, mustGetString(cmd, "user"))
	if err != nil {
		return err
	}

	svc, err := newCatalogService(cfg, books)
	if err != nil {
		return err
	}

	result, err := svc.AddTitle(cmd.Context(), user.ID, title,
		mustGetString(cmd, "author"), database.Shelf(mustGetString(cmd, "shelf")), "")
	if err != nil {
		return err
	}

	if result.Duplicate {
		fmt.Printf("Not added: matches existing entry %q (similarity %.2f)\n",
			result.Match.MatchedTitle, result.Match.Similarity)
		return nil
	}

	book := result.Book
	fmt.Printf("Added %q", book.Title)
	if book.Author != "" {
		fmt.Printf(" by %s", book.Author)
	}
	if len(book.Genres) > 0 {
		fmt.Printf(" [%s]", strings.Join(book.Genres, ", "))
	}
	fmt.Printf(" to %s\n", book.Shelf)
	return nil
}
