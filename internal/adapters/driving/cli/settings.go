package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	configfile "github.com/arara-labs/gradsearch/internal/adapters/driven/config/file"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change configuration values stored in the config file.

Known keys:
  cache.dir         directory holding scraped dataset caches
  cache.enabled     whether datasets are cached on disk
  catalog.base_url  catalog website base URL
  catalog.rate      catalog requests per second
  search.limit      default search result count`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Changes a configuration value and persists it immediately.
The value is parsed according to the key's type: cache.enabled takes
true/false, catalog.rate a number, search.limit an integer.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingKind drives value parsing on set.
type settingKind int

const (
	kindString settingKind = iota
	kindBool
	kindInt
	kindFloat
)

type settingDef struct {
	key  string
	kind settingKind
	desc string
}

// knownSettings lists every key the settings commands accept.
var knownSettings = []settingDef{
	{configfile.KeyCacheDir, kindString, "directory holding scraped dataset caches"},
	{configfile.KeyCacheEnabled, kindBool, "whether datasets are cached on disk"},
	{configfile.KeyCatalogURL, kindString, "catalog website base URL"},
	{configfile.KeyCatalogRate, kindFloat, "catalog requests per second"},
	{configfile.KeySearchLimit, kindInt, "default search result count"},
}

func findSetting(key string) *settingDef {
	for i := range knownSettings {
		if knownSettings[i].key == key {
			return &knownSettings[i]
		}
	}
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("Config file: %s\n\n", configStore.Path())

	for _, setting := range knownSettings {
		value, ok := configStore.Get(setting.key)
		if !ok {
			cmd.Printf("  %-18s (not set)\n", setting.key)
			continue
		}
		cmd.Printf("  %-18s %v\n", setting.key, value)
	}

	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	if findSetting(key) == nil {
		return fmt.Errorf("unknown setting %q", key)
	}

	value, ok := configStore.Get(key)
	if !ok {
		cmd.Printf("%s is not set\n", key)
		return nil
	}

	cmd.Printf("%v\n", value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	setting := findSetting(key)
	if setting == nil {
		return fmt.Errorf("unknown setting %q", key)
	}

	value, err := parseSettingValue(setting, raw)
	if err != nil {
		return err
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("%s = %v\n", key, value)
	return nil
}

func parseSettingValue(setting *settingDef, raw string) (any, error) {
	switch setting.kind {
	case kindBool:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", setting.key, raw)
		}
		return value, nil
	case kindInt:
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", setting.key, raw)
		}
		return value, nil
	case kindFloat:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s expects a number, got %q", setting.key, raw)
		}
		return value, nil
	default:
		return raw, nil
	}
}
