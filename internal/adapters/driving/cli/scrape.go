package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arara-labs/gradsearch/internal/core/domain"
)

var scrapeFresh bool

var scrapeCmd = &cobra.Command{
	Use:   "scrape [dataset]",
	Short: "Refresh catalog datasets",
	Long: `Loads catalog datasets and rebuilds their search indexes.
If a dataset name (disciplines, courses) is provided, only that dataset
is refreshed. Otherwise, all datasets are refreshed. Cached data is
reused when present; --fresh forces a scrape of the catalog website.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeFresh, "fresh", false, "bypass the cache and scrape the catalog website")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	if scrapeService == nil {
		return errors.New("scrape service not configured")
	}

	ctx := context.Background()

	if len(args) > 0 {
		// Refresh specific dataset
		dataset, err := domain.ParseDataset(args[0])
		if err != nil {
			return err
		}

		cmd.Printf("Refreshing %s...\n", dataset)

		count, err := scrapeService.Refresh(ctx, dataset, scrapeFresh)
		if err != nil {
			return fmt.Errorf("scrape failed: %w", err)
		}

		cmd.Printf("Loaded %d %s.\n", count, dataset)
		return nil
	}

	// Refresh all datasets
	cmd.Println("Refreshing all datasets...")

	counts, err := scrapeService.RefreshAll(ctx, scrapeFresh)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	for _, dataset := range domain.Datasets() {
		cmd.Printf("  %s: %d items\n", dataset, counts[dataset])
	}

	return nil
}
