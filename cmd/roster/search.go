package main

import (
	"github.com/spf13/cobra"
)

var searchWhere []string

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringArrayVarP(&searchWhere, "where", "w", nil, "Criterion as column=text (repeatable)")
}

var searchCmd = &cobra.Command{
	Use:   "search --where column=text...",
	Short: "Find students matching every criterion",
	Long: `Find students whose columns contain the given text, ignoring case.
Every criterion must match.

Examples:
  roster search -w name=an
  roster search -w grade=a -w age=2`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	criteria, err := parseAssignments(searchWhere)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if len(criteria) == 0 {
		exitWithError(ExitError, "No search criteria provided!")
	}

	s := mustOpenStore()

	res, err := s.Search(criteria)
	if err != nil {
		exitWithError(ExitError, "searching records: %v", err)
	}

	if !humanOutput {
		outputJSON(res)
		return nil
	}

	empty := NoMatchesMessage
	if res.NoRecords() {
		empty = NoStudentsMessage
	}
	outputTable("Search Results:", res.Columns, res.Rows(), empty)
	return nil
}
