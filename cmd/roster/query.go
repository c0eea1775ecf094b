package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/matsen/roster/internal/config"
	"github.com/matsen/roster/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Query students with SQL",
	Long: `Run a SQL query against a SQLite copy of the store.

The copy lives in the cache directory and is rebuilt whenever the store file
changes. Students are in the table "records"; every column is TEXT.

Examples:
  roster query "SELECT name FROM records WHERE grade = 'A'"
  roster query "SELECT grade, COUNT(*) FROM records GROUP BY grade"
  roster query "SELECT * FROM records WHERE CAST(age AS INTEGER) >= 18"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	s := mustOpenStore()
	dbPath := mustSyncMirror(s)

	res, err := store.Query(dbPath, args[0])
	if err != nil {
		exitWithError(ExitError, "SQL error: %v", err)
	}

	if humanOutput {
		outputTable("", res.Columns, res.Rows, NoRowsMessage)
	} else {
		outputJSON(res)
	}
	return nil
}

// mustSyncMirror rebuilds the store's SQLite mirror if stale and returns its path.
func mustSyncMirror(s *store.Store) string {
	dbPath := config.MirrorDBPath(s.Path())
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	needsSync, err := s.NeedsSync(dbPath)
	if err != nil {
		slog.Debug("checking mirror failed, rebuilding", "error", err)
		needsSync = true
	}
	if needsSync {
		n, err := s.Sync(dbPath)
		if err != nil {
			exitWithError(ExitError, "syncing query database: %v", err)
		}
		slog.Debug("mirror rebuilt", "path", dbPath, "records", n)
	}
	return dbPath
}
