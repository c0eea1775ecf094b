package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete every student with the given id",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]
	s := mustOpenStore()

	deleted, err := s.Delete(id)
	if err != nil {
		exitWithError(ExitError, "deleting records: %v", err)
	}

	status := "deleted"
	if !deleted {
		status = "not_found"
	}

	if humanOutput {
		if deleted {
			outputHuman("Student deleted successfully!\n")
		} else {
			outputHuman("Student not found!\n")
		}
	} else {
		outputJSON(StatusResponse{Status: status, ID: id})
	}
	return nil
}
