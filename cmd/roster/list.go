package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all students",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s := mustOpenStore()

	rs, err := s.ViewAll()
	if err != nil {
		exitWithError(ExitError, "reading records: %v", err)
	}

	if humanOutput {
		outputTable("Student Records:", rs.Columns, rs.Rows(), NoStudentsMessage)
	} else {
		outputJSON(rs)
	}
	return nil
}
