package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matsen/roster/internal/config"
	"github.com/matsen/roster/internal/render"
	"github.com/matsen/roster/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(shellCmd)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive menu for managing students",
	Long: `Start the interactive student management menu.

Without --file, you are asked for a file path first; press Enter to use the
default. Errors are reported and the menu is shown again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sh := newShell(os.Stdin, os.Stdout, config.ResolveFile(""))
		return sh.run(config.ExpandPath(fileFlag))
	},
}

const menu = `
Student Management System
1. Add Student
2. View All Students
3. View Specific Columns
4. Update Student
5. Delete Student
6. Add Column
7. Remove Column
8. Change File
9. Search Students
10. Exit
`

// shell is the interactive menu loop over one store.
type shell struct {
	in          *bufio.Scanner
	out         io.Writer
	store       *store.Store
	defaultPath string
}

func newShell(in io.Reader, out io.Writer, defaultPath string) *shell {
	return &shell{
		in:          bufio.NewScanner(in),
		out:         out,
		store:       store.NewDefault(),
		defaultPath: defaultPath,
	}
}

// errInputClosed ends the loop when input runs out.
var errInputClosed = errors.New("input closed")

func (sh *shell) prompt(format string, args ...any) (string, error) {
	fmt.Fprintf(sh.out, format, args...)
	if !sh.in.Scan() {
		if err := sh.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return sh.in.Text(), nil
}

func (sh *shell) println(format string, args ...any) {
	fmt.Fprintf(sh.out, format+"\n", args...)
}

// run binds the store, then serves menu choices until Exit or end of input.
// A non-empty path skips the initial file prompt.
func (sh *shell) run(path string) error {
	if path != "" {
		if _, _, err := sh.store.SetPath(path, sh.defaultPath); err != nil {
			return err
		}
	} else if err := sh.choosePath(); err != nil {
		return ignoreClosed(err)
	}

	for {
		fmt.Fprint(sh.out, menu)
		choice, err := sh.prompt("Enter your choice (1-10): ")
		if err != nil {
			return ignoreClosed(err)
		}

		done, err := sh.dispatch(strings.TrimSpace(choice))
		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil {
			sh.report(err)
		}
		if done {
			return nil
		}
	}
}

func ignoreClosed(err error) error {
	if errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}

// choosePath asks for a file until one is accepted.
func (sh *shell) choosePath() error {
	for {
		p, err := sh.prompt("Enter the file path (CSV or JSON) or press Enter for default: ")
		if err != nil {
			return err
		}
		if _, _, err := sh.store.SetPath(config.ExpandPath(strings.TrimSpace(p)), sh.defaultPath); err != nil {
			sh.println("Error: %v", err)
			continue
		}
		return nil
	}
}

// report prints a failed operation without leaving the loop.
func (sh *shell) report(err error) {
	if storeExitCode(err) != ExitError || errors.Is(err, store.ErrNotConfigured) {
		sh.println("Error: %v", err)
		return
	}
	sh.println("An unexpected error occurred: %v", err)
}

func (sh *shell) dispatch(choice string) (bool, error) {
	switch choice {
	case "1":
		return false, sh.addStudent()
	case "2":
		return false, sh.viewAll()
	case "3":
		return false, sh.viewColumns()
	case "4":
		return false, sh.updateStudent()
	case "5":
		return false, sh.deleteStudent()
	case "6":
		return false, sh.addColumn()
	case "7":
		return false, sh.removeColumn()
	case "8":
		return false, sh.changeFile()
	case "9":
		return false, sh.search()
	case "10":
		sh.println("Goodbye!")
		return true, nil
	default:
		sh.println("Invalid choice! Please try again.")
		return false, nil
	}
}

func (sh *shell) table(title string, headers []string, rows [][]string, empty string) error {
	if len(rows) > 0 {
		sh.println("\n%s", title)
	}
	return render.Table(sh.out, headers, rows, empty)
}

func (sh *shell) addStudent() error {
	rec := store.Record{}
	for _, col := range sh.store.Schema() {
		v, err := sh.prompt("Enter student %s: ", col)
		if err != nil {
			return err
		}
		rec[col] = v
	}
	if err := sh.store.Add(rec); err != nil {
		return err
	}
	sh.println("Student added successfully!")
	return nil
}

func (sh *shell) viewAll() error {
	rs, err := sh.store.ViewAll()
	if err != nil {
		return err
	}
	return sh.table("Student Records:", rs.Columns, rs.Rows(), NoStudentsMessage)
}

func (sh *shell) viewColumns() error {
	sh.println("Available columns: %v", []string(sh.store.Schema()))
	line, err := sh.prompt("Enter column names (comma-separated): ")
	if err != nil {
		return err
	}

	// Blank entries are kept so that the header matches what was typed.
	var cols []string
	for _, c := range strings.Split(line, ",") {
		cols = append(cols, strings.TrimSpace(c))
	}

	p, err := sh.store.ViewColumns(cols)
	if err != nil {
		return err
	}
	return sh.table("Selected Student Records:", p.Columns, p.Rows, NoStudentsMessage)
}

func (sh *shell) updateStudent() error {
	id, err := sh.prompt("Enter student ID to update: ")
	if err != nil {
		return err
	}

	patch := store.Record{}
	for _, col := range sh.store.Schema() {
		v, err := sh.prompt("Enter new %s (press enter to skip): ", col)
		if err != nil {
			return err
		}
		if v != "" {
			patch[col] = v
		}
	}

	updated, err := sh.store.Update(id, patch)
	if err != nil {
		return err
	}
	if updated {
		sh.println("Student updated successfully!")
	} else {
		sh.println("Student not found!")
	}
	return nil
}

func (sh *shell) deleteStudent() error {
	id, err := sh.prompt("Enter student ID to delete: ")
	if err != nil {
		return err
	}

	deleted, err := sh.store.Delete(id)
	if err != nil {
		return err
	}
	if deleted {
		sh.println("Student deleted successfully!")
	} else {
		sh.println("Student not found!")
	}
	return nil
}

func (sh *shell) addColumn() error {
	name, err := sh.prompt("Enter new column name: ")
	if err != nil {
		return err
	}

	name, err = sh.store.AddColumn(name)
	if errors.Is(err, store.ErrColumnConflict) {
		sh.println("Column already exists!")
		return nil
	}
	if err != nil {
		return err
	}
	sh.println("Column '%s' added successfully!", name)
	return nil
}

func (sh *shell) removeColumn() error {
	sh.println("Available columns: %v", []string(sh.store.Schema()))
	name, err := sh.prompt("Enter column name to remove: ")
	if err != nil {
		return err
	}

	err = sh.store.RemoveColumn(name)
	switch {
	case errors.Is(err, store.ErrColumnMissing):
		sh.println("Column does not exist!")
		return nil
	case errors.Is(err, store.ErrColumnProtected):
		sh.println("Cannot remove ID column!")
		return nil
	case err != nil:
		return err
	}
	sh.println("Column '%s' removed successfully!", name)
	return nil
}

func (sh *shell) changeFile() error {
	p, err := sh.prompt("Enter new file path (CSV or JSON): ")
	if err != nil {
		return err
	}
	if _, _, err := sh.store.SetPath(config.ExpandPath(strings.TrimSpace(p)), sh.defaultPath); err != nil {
		return err
	}
	sh.println("File changed successfully!")
	return nil
}

func (sh *shell) search() error {
	sh.println("\nEnter search criteria (press Enter to skip a field):")
	criteria := make(map[string]string)
	for _, col := range sh.store.Schema() {
		v, err := sh.prompt("Search by %s: ", col)
		if err != nil {
			return err
		}
		if v != "" {
			criteria[col] = v
		}
	}
	if len(criteria) == 0 {
		sh.println("No search criteria provided!")
		return nil
	}

	res, err := sh.store.Search(criteria)
	if err != nil {
		return err
	}
	for _, f := range res.MissingFields {
		sh.println("Warning: Field '%s' not found in student records", f)
	}

	empty := NoMatchesMessage
	if res.NoRecords() {
		empty = NoStudentsMessage
	}
	return sh.table("Search Results:", res.Columns, res.Rows(), empty)
}
