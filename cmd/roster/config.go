package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/roster/internal/config"
	"github.com/matsen/roster/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set global configuration values",
	Long: `Get or set values in ~/.config/roster/config.yml.

Usage:
  roster config                                  # Show all config
  roster config default-file                     # Get specific value
  roster config default-file ~/school/roster.json  # Set value

Keys:
  default-file  Store file used when --file and $ROSTER_FILE are unset
  human         Default to human-readable output (true/false)
  cache-dir     Directory for SQLite query copies`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	DefaultFile string `json:"default_file,omitempty"`
	Human       bool   `json:"human"`
	CacheDir    string `json:"cache_dir,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("default-file: %s\n", cfg.DefaultFile)
			fmt.Printf("human:        %t\n", cfg.Human)
			fmt.Printf("cache-dir:    %s\n", cfg.CacheDir)
		} else {
			outputJSON(ConfigResponse{
				DefaultFile: cfg.DefaultFile,
				Human:       cfg.Human,
				CacheDir:    cfg.CacheDir,
			})
		}
		return nil
	}

	key := args[0]
	normalizedKey := normalizeKey(key)

	// One arg: get specific value
	if len(args) == 1 {
		var value string
		switch normalizedKey {
		case "default-file":
			value = cfg.DefaultFile
		case "human":
			value = strconv.FormatBool(cfg.Human)
		case "cache-dir":
			value = cfg.CacheDir
		default:
			exitWithError(ExitError, "unknown configuration key: %s", key)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(normalizedKey, "-", "_"): value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]

	switch normalizedKey {
	case "default-file":
		expanded := config.ExpandPath(value)
		if _, err := store.FormatFromPath(expanded); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.DefaultFile = expanded
	case "human":
		b, err := strconv.ParseBool(value)
		if err != nil {
			exitWithError(ExitError, "human must be true or false, got %q", value)
		}
		cfg.Human = b
	case "cache-dir":
		cfg.CacheDir = config.ExpandPath(value)
	default:
		exitWithError(ExitError, "unknown configuration key: %s", key)
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    normalizedKey,
			Value:  value,
		})
	}
	return nil
}

// normalizeKey converts key formats (default-file, default_file, DEFAULT_FILE) to a consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
