package cmd

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jsvoboda/shelfscan/internal/catalog"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Fill in missing authors and genres",
	Long: `Backfill walks the catalog and looks up author and genre metadata
for books that are missing it. Lookups are paced to stay polite to the
Open Library API.`,
	RunE: runBackfill,
}

func init() {
	rootCmd.AddCommand(backfillCmd)

	backfillCmd.Flags().String("user", "", "Username owning the catalog")
	backfillCmd.Flags().Duration("delay", 0, "Delay between lookups (default from ENRICH_BACKFILL_DELAY)")
}

func runBackfill(cmd *cobra.Command, args []string) error {
	cfg, books, users, err := initBackend()
	if err != nil {
		return err
	}

	user, err := resolveUser(cmd.Context(), users, mustGetString(cmd, "user"))
	if err != nil {
		return err
	}

	delay, err := cmd.Flags().GetDuration("delay")
	if err != nil {
		panic(fmt.Sprintf("flag error for --delay: %v", err))
	}
	if delay == 0 {
		delay = cfg.Enrich.BackfillDelay
	}

	enricher, err := newEnricher(cfg)
	if err != nil {
		return err
	}
	svc := catalog.NewService(books, enricher, delay)

	total, err := books.Count(cmd.Context(), user.ID)
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Println("Catalog is empty, nothing to backfill")
		return nil
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Backfilling metadata"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
	)

	start := time.Now()
	updated, err := svc.Backfill(cmd.Context(), user.ID, func(done, totalBooks int) {
		_ = bar.Set(done)
	})
	fmt.Println()
	if err != nil {
		return fmt.Errorf("backfill failed after %d updates: %w", updated, err)
	}

	fmt.Printf("Updated %d of %d books in %s\n", updated, total, time.Since(start).Round(time.Second))
	return nil
}
