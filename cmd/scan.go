package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsvoboda/shelfscan/internal/database"
	"github.com/jsvoboda/shelfscan/internal/ocr"
	"github.com/jsvoboda/shelfscan/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Scan a shelf photo for book titles",
	Long: `Scan reads a photo of book spines or covers, extracts candidate
titles and reports which ones already sit in the catalog. With --add the
new titles are stored right away.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().String("user", "", "Username owning the catalog")
	scanCmd.Flags().Bool("add", false, "Add non-duplicate titles to the catalog")
	scanCmd.Flags().String("shelf", "library", "Target shelf for added titles (library or wishlist)")
	scanCmd.Flags().Bool("raw", false, "Print the raw recognized text and exit")
}

func runScan(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("could not read image: %w", err)
	}

	cfg, books, users, err := initBackend()
	if err != nil {
		return err
	}

	provider, err := ocr.FromConfig(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Recognizing text with %s...\n", provider.Name())
	rawText, err := provider.RecognizeText(cmd.Context(), imageData)
	if err != nil {
		return fmt.Errorf("text recognition failed: %w", err)
	}

	if mustGetBool(cmd, "raw") {
		fmt.Println(rawText)
		return nil
	}

	user, err := resolveUser(cmd.Context(), users, mustGetString(cmd, "user"))
	if err != nil {
		return err
	}

	svc, err := newCatalogService(cfg, books)
	if err != nil {
		return err
	}

	var titles []string
	for _, title := range scan.ExtractTitles(rawText) {
		if !scan.IsAuthorLine(title) {
			titles = append(titles, title)
		}
	}
	if len(titles) == 0 {
		fmt.Println("No plausible titles found")
		return nil
	}

	author, _ := scan.ExtractAuthor(rawText)
	if author != "" {
		fmt.Printf("Detected author: %s\n", author)
	}

	candidates, err := svc.Evaluate(cmd.Context(), user.ID, titles)
	if err != nil {
		return err
	}

	addNew := mustGetBool(cmd, "add")
	shelf := database.Shelf(mustGetString(cmd, "shelf"))

	added := 0
	for _, candidate := range candidates {
		if candidate.Match.IsDuplicate {
			fmt.Printf("  skip  %-40s (already have %q)\n", candidate.Title, candidate.Match.MatchedTitle)
			continue
		}
		if !addNew {
			fmt.Printf("  new   %s\n", candidate.Title)
			continue
		}

		result, err := svc.AddTitle(cmd.Context(), user.ID, candidate.Title, author, shelf, imagePath)
		if err != nil {
			fmt.Printf("  error %-40s %v\n", candidate.Title, err)
			continue
		}
		if result.Duplicate {
			fmt.Printf("  skip  %-40s (already have %q)\n", candidate.Title, result.Match.MatchedTitle)
			continue
		}
		fmt.Printf("  added %-40s %s\n", result.Book.Title, result.Book.Author)
		added++
	}

	if addNew {
		fmt.Printf("Added %d of %d candidates\n", added, len(candidates))
	}
	return nil
}
