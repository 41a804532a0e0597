package cli

import (
	"github.com/spf13/cobra"

	"github.com/arara-labs/gradsearch/internal/core/ports/driven"
	"github.com/arara-labs/gradsearch/internal/core/ports/driving"
	"github.com/arara-labs/gradsearch/internal/logger"
)

// version is the application version, set at build time via ldflags.
var version = "dev"

// Service implementations wired in by main before Execute runs.
// Commands nil-check the services they need.
var (
	searchService driving.SearchService
	scrapeService driving.ScrapeService
	statsService  driving.StatsService
	cacheWatcher  driving.CacheWatcher
	configStore   driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gradsearch",
	Short: "Fuzzy search over the Unicamp undergraduate catalog",
	Long: `gradsearch scrapes the Unicamp undergraduate catalog and serves
fuzzy search over its subjects and degree programs.

Scraped datasets are cached locally, so searches work offline once
the catalog has been fetched. Run "gradsearch scrape" first, then
search from the command line, the interactive TUI, or an MCP client.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services bundles the port implementations the commands depend on.
type Services struct {
	Search  driving.SearchService
	Scrape  driving.ScrapeService
	Stats   driving.StatsService
	Watcher driving.CacheWatcher
	Config  driven.ConfigStore
}

// SetServices installs the port implementations used by the commands.
// Must be called before Execute.
func SetServices(s Services) {
	searchService = s.Search
	scrapeService = s.Scrape
	statsService = s.Stats
	cacheWatcher = s.Watcher
	configStore = s.Config
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
