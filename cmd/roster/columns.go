package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(columnsCmd)
}

var columnsCmd = &cobra.Command{
	Use:   "columns <column>[,<column>...]",
	Short: "Show selected columns of every student",
	Long: `Show only the named columns, in the order given.

A column that does not exist is skipped rather than reported.

Examples:
  roster columns name grade
  roster columns name,age`,
	Args: cobra.MinimumNArgs(1),
	RunE: runColumns,
}

func runColumns(cmd *cobra.Command, args []string) error {
	cols := splitColumns(args)
	if len(cols) == 0 {
		exitWithError(ExitError, "no columns given")
	}

	s := mustOpenStore()

	p, err := s.ViewColumns(cols)
	if err != nil {
		exitWithError(ExitError, "reading records: %v", err)
	}

	if humanOutput {
		outputTable("Selected Student Records:", p.Columns, p.Rows, NoStudentsMessage)
	} else {
		outputJSON(p)
	}
	return nil
}
