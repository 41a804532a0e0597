package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arara-labs/gradsearch/internal/adapters/driving/tui"
	"github.com/arara-labs/gradsearch/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive catalog browser",
	Long: `Launch the interactive terminal user interface.

Type to search the catalog; results update with every keystroke.

Controls:
  ↑/↓, Ctrl+p/n - Move the selection
  Enter         - Show the selected record
  Tab           - Switch between subjects and degree programs
  Esc           - Clear query / back / quit
  Ctrl+C        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tui requires an interactive terminal")
	}

	if searchService == nil {
		return errors.New("search service not configured")
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Watch the cache while the TUI runs so indexes pick up datasets
	// refreshed by another process.
	if cacheWatcher != nil {
		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()

		go func() {
			err := cacheWatcher.Start(watchCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Cache watcher stopped: %v", err)
			}
		}()

		defer func() {
			if err := cacheWatcher.Stop(); err != nil {
				logger.Warn("Cache watcher stop error: %v", err)
			}
		}()
	}

	// Create the TUI app
	app, err := tui.NewApp(tui.NewPorts(searchService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Set up context from command
	app.WithContext(cmd.Context())

	// Create and run the bubbletea program
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
