package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arara-labs/gradsearch/internal/core/domain"
)

var statsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show scrape run history",
	Long: `Shows when each dataset was last scraped and lists recent
scrape runs with their item counts, durations and failures.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 10, "maximum number of runs to list")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	ctx := context.Background()

	for _, dataset := range domain.Datasets() {
		run, err := statsService.LastRun(ctx, dataset)
		if err != nil {
			return fmt.Errorf("failed to load last run: %w", err)
		}
		if run == nil {
			cmd.Printf("  %-12s never scraped\n", dataset)
			continue
		}
		cmd.Printf("  %-12s %d items in %s at %s\n",
			dataset, run.Items, run.Duration,
			run.StartedAt.Format("2006-01-02 15:04:05"))
	}

	runs, err := statsService.RecentRuns(ctx, statsLimit)
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("\nNo scrape runs recorded.")
		return nil
	}

	cmd.Println("\nRecent runs:")
	for i := range runs {
		status := "ok"
		if runs[i].Error != "" {
			status = "failed: " + runs[i].Error
		}
		cmd.Printf("  %s  %-12s %5d items  %10s  %s\n",
			runs[i].StartedAt.Format("2006-01-02 15:04"),
			runs[i].Dataset, runs[i].Items, runs[i].Duration, status)
	}

	return nil
}
