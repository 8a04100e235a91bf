// Package cmd implements the shelfscan command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shelfscan",
	Short: "Catalog your bookshelf from photos",
	Long: `ShelfScan keeps a personal book catalog. Point it at a photo of a
bookshelf and it reads the spines with a vision model, filters the noise,
skips titles you already own and enriches new entries with author and
genre data from Open Library.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
