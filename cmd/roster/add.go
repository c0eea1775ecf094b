package main

import (
	"github.com/google/uuid"
	"github.com/matsen/roster/internal/store"
	"github.com/spf13/cobra"
)

var addSet []string
var addAutoID bool

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringArrayVarP(&addSet, "set", "s", nil, "Field value as key=value (repeatable)")
	addCmd.Flags().BoolVar(&addAutoID, "auto-id", false, "Generate a UUID when id is not given")
}

var addCmd = &cobra.Command{
	Use:   "add --set id=1 --set name=Ann --set age=20 --set grade=A",
	Short: "Add a student",
	Long: `Add a student record.

Every column must be given (columns added with add-column may be empty).
age must be a whole number from 5 to 100 and grade one of A, B, C, D, F.
Ids must be unique.

Examples:
  roster add -s id=1 -s name=Ann -s age=20 -s grade=A
  roster add --auto-id -s name=Bob -s age=31 -s grade=B`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	fields, err := parseAssignments(addSet)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	rec := store.Record(fields)
	if addAutoID && rec[store.ColumnID] == "" {
		rec[store.ColumnID] = uuid.NewString()
	}

	s := mustOpenStore()
	if err := s.Add(rec); err != nil {
		exitWithError(storeExitCode(err), "%v", err)
	}

	if humanOutput {
		outputHuman("Student added successfully!\n")
	} else {
		outputJSON(StatusResponse{Status: "added", ID: rec[store.ColumnID]})
	}
	return nil
}
