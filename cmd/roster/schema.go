package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addColumnCmd)
	rootCmd.AddCommand(removeColumnCmd)
}

var addColumnCmd = &cobra.Command{
	Use:   "add-column <name>",
	Short: "Add a column to every student",
	Long: `Add a column. The name is lowercased; existing students get an empty value.

Adding a column whose name already exists (in any case) is an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runAddColumn,
}

var removeColumnCmd = &cobra.Command{
	Use:   "remove-column <name>",
	Short: "Remove a column from every student",
	Long:  `Remove a column and its values. The id column cannot be removed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRemoveColumn,
}

func runAddColumn(cmd *cobra.Command, args []string) error {
	s := mustOpenStore()

	name, err := s.AddColumn(args[0])
	if err != nil {
		exitWithError(storeExitCode(err), "%v", err)
	}

	if humanOutput {
		outputHuman("Column '%s' added successfully!\n", name)
	} else {
		outputJSON(StatusResponse{Status: "added", Column: name})
	}
	return nil
}

func runRemoveColumn(cmd *cobra.Command, args []string) error {
	name := args[0]
	s := mustOpenStore()

	if err := s.RemoveColumn(name); err != nil {
		exitWithError(storeExitCode(err), "%v", err)
	}

	if humanOutput {
		outputHuman("Column '%s' removed successfully!\n", name)
	} else {
		outputJSON(StatusResponse{Status: "removed", Column: name})
	}
	return nil
}
