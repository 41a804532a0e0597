package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/arara-labs/gradsearch/internal/adapters/driven/config/file"
	"github.com/arara-labs/gradsearch/internal/core/domain"
)

var (
	searchLimit int
	searchType  string
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Long: `Fuzzy-searches the scraped catalog by code and name.
Typos are tolerated: results are ranked by edit distance against the
query, closest first. Searches subjects unless --type courses is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "disciplines", "dataset to search (disciplines, courses)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// searchRow is one search hit flattened for output.
type searchRow struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	dataset, err := domain.ParseDataset(searchType)
	if err != nil {
		return err
	}

	// The configured default applies only when the flag is not given.
	if !cmd.Flags().Changed("limit") && configStore != nil {
		if limit := configStore.GetInt(configfile.KeySearchLimit); limit > 0 {
			searchLimit = limit
		}
	}

	ctx := context.Background()

	rows, err := collectSearchRows(ctx, dataset, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, rows)
	}

	return outputSearchTable(cmd, dataset, rows)
}

func collectSearchRows(ctx context.Context, dataset domain.Dataset, query string) ([]searchRow, error) {
	if dataset == domain.DatasetCourses {
		matches, err := searchService.SearchCourses(ctx, query, searchLimit)
		if err != nil {
			return nil, err
		}
		rows := make([]searchRow, len(matches))
		for i, m := range matches {
			rows[i] = searchRow{Code: m.Item.Code, Name: m.Item.Name, Score: m.Score}
		}
		return rows, nil
	}

	matches, err := searchService.SearchDisciplines(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	rows := make([]searchRow, len(matches))
	for i, m := range matches {
		rows[i] = searchRow{Code: m.Item.Code, Name: m.Item.Name, Score: m.Score}
	}
	return rows, nil
}

func outputSearchJSON(cmd *cobra.Command, rows []searchRow) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, dataset domain.Dataset, rows []searchRow) error {
	if len(rows) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results (%s):\n\n", dataset)
	for i := range rows {
		// Format: [N] CODE - Name (distance)
		cmd.Printf("  [%d] %s - %s (%.2f)\n", i+1, rows[i].Code, rows[i].Name, rows[i].Score)
	}

	return nil
}
