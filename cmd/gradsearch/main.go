// Package main is the entry point for the gradsearch CLI.
package main

import (
	"fmt"
	"os"

	"github.com/arara-labs/gradsearch/cgo/rapidfuzz"
	cachefile "github.com/arara-labs/gradsearch/internal/adapters/driven/cache/file"
	configfile "github.com/arara-labs/gradsearch/internal/adapters/driven/config/file"
	"github.com/arara-labs/gradsearch/internal/adapters/driven/storage/sqlite"
	"github.com/arara-labs/gradsearch/internal/adapters/driving/cli"
	"github.com/arara-labs/gradsearch/internal/connectors/dac"
	"github.com/arara-labs/gradsearch/internal/core/ports/driven"
	"github.com/arara-labs/gradsearch/internal/core/services"
	"github.com/arara-labs/gradsearch/internal/logger"
	"github.com/arara-labs/gradsearch/internal/parallel"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	cache, err := cachefile.NewCacheStore(config.GetString(configfile.KeyCacheDir))
	if err != nil {
		return fmt.Errorf("opening cache store: %w", err)
	}

	pool, err := parallel.NewPool(0)
	if err != nil {
		return fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	// Run history is an optional nicety; a broken history database
	// should not take the whole tool down.
	var store *sqlite.Store
	store, err = sqlite.NewStore("")
	if err != nil {
		logger.Warn("Run history unavailable: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	client := dac.NewClient(
		config.GetString(configfile.KeyCatalogURL),
		config.GetFloat(configfile.KeyCatalogRate),
	)

	cacheEnabled := true
	if v, ok := config.Get(configfile.KeyCacheEnabled); ok {
		if b, isBool := v.(bool); isBool {
			cacheEnabled = b
		}
	}

	var runs driven.RunStore
	if store != nil {
		runs = store.RunStore()
	}

	scraper := services.NewScraper(cache, cacheEnabled, runs, pool)

	// Let any detached cache writes land before teardown, whether or
	// not the command succeeded. Each write is one bounded file save,
	// so this never hangs the shutdown path.
	defer scraper.WaitWrites()

	catalog := services.NewCatalogService(
		scraper,
		rapidfuzz.Factory{},
		pool,
		dac.NewDisciplineSource(client, pool),
		dac.NewCourseSource(client, pool),
		runs,
	)

	cli.SetServices(cli.Services{
		Search:  catalog,
		Scrape:  catalog,
		Stats:   catalog,
		Watcher: services.NewRefresher(cache, catalog),
		Config:  config,
	})

	return cli.Execute()
}
