package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/roster/internal/render"
)

// Messages shown in place of an empty table.
const (
	NoStudentsMessage = "No students found!"
	NoMatchesMessage  = "No matching students found!"
	NoRowsMessage     = "(0 rows)"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// outputTable writes a titled grid table to stdout, or empty when there are no rows.
func outputTable(title string, headers []string, rows [][]string, empty string) {
	if len(rows) > 0 && title != "" {
		fmt.Printf("\n%s\n", title)
	}
	if err := render.Table(os.Stdout, headers, rows, empty); err != nil {
		exitWithError(ExitError, "writing table: %v", err)
	}
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
	Column string `json:"column,omitempty"`
	Path   string `json:"path,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// parseAssignments turns ["k=v", ...] into a map. Keys are trimmed, values kept verbatim.
func parseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", p)
		}
		out[k] = v
	}
	return out, nil
}

// splitColumns splits comma-separated column lists and trims each name.
func splitColumns(args []string) []string {
	var cols []string
	for _, a := range args {
		for _, c := range strings.Split(a, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cols = append(cols, c)
			}
		}
	}
	return cols
}
