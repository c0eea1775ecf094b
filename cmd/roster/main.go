// Package main provides the roster CLI entry point.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/matsen/roster/internal/config"
	"github.com/matsen/roster/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	fileFlag    string
	verbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage student records in a CSV or JSON file",
	Long: `roster keeps a flat list of student records (id, name, age, grade and
any columns you add) in a single CSV or JSON file.

The file is chosen by --file, then $ROSTER_FILE (a .env file in the working
directory is honoured), then default_file in ~/.config/roster/config.yml,
then students.csv. It is created on first use.

All commands output JSON by default; use --human for tables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "Store file (.csv or .json)")
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

// setup configures logging and loads .env and the global config.
func setup(cmd *cobra.Command, args []string) error {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	config.LoadEnv()

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if cfg.Human && !cmd.Flags().Changed("human") {
		humanOutput = true
	}
	return nil
}

// mustOpenStore binds a default store to the resolved file, exits on error.
func mustOpenStore() *store.Store {
	s := store.NewDefault()
	path, format, err := s.SetPath(config.ResolveFile(fileFlag), config.DefaultFile)
	if err != nil {
		exitWithError(storeExitCode(err), "%v", err)
	}
	slog.Debug("store ready", "path", path, "format", format, "columns", len(s.Schema()))
	return s
}

// storeExitCode maps store errors to exit codes.
func storeExitCode(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidFormat):
		return ExitConfigError
	case errors.Is(err, store.ErrMissingField),
		errors.Is(err, store.ErrInvalidField),
		errors.Is(err, store.ErrDuplicateID),
		errors.Is(err, store.ErrColumnConflict),
		errors.Is(err, store.ErrColumnMissing),
		errors.Is(err, store.ErrColumnProtected),
		errors.Is(err, store.ErrInvalidColumn):
		return ExitDataError
	default:
		return ExitError
	}
}
