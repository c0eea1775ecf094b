package main

import (
	"github.com/matsen/roster/internal/store"
	"github.com/spf13/cobra"
)

var updateSet []string

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringArrayVarP(&updateSet, "set", "s", nil, "New field value as key=value (repeatable)")
}

var updateCmd = &cobra.Command{
	Use:   "update <id> --set key=value...",
	Short: "Update every student with the given id",
	Long: `Overwrite fields of every student whose id matches.

Only existing columns can be set; use add-column first for a new one.

Examples:
  roster update 1 -s grade=B
  roster update 1 -s name="Ann Lee" -s age=21`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]

	patch, err := parseAssignments(updateSet)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if len(patch) == 0 {
		exitWithError(ExitError, "nothing to update: use --set key=value")
	}

	s := mustOpenStore()

	updated, err := s.Update(id, store.Record(patch))
	if err != nil {
		exitWithError(ExitError, "updating records: %v", err)
	}

	status := "updated"
	if !updated {
		status = "not_found"
	}

	if humanOutput {
		if updated {
			outputHuman("Student updated successfully!\n")
		} else {
			outputHuman("Student not found!\n")
		}
	} else {
		outputJSON(StatusResponse{Status: status, ID: id})
	}
	return nil
}
