// Package store provides a flat, file-backed record store with CSV and JSON encodings.
package store

import (
	"strconv"
	"strings"
)

// Built-in column names.
const (
	ColumnID    = "id"
	ColumnName  = "name"
	ColumnAge   = "age"
	ColumnGrade = "grade"
)

// Age bounds accepted by Validate, inclusive.
const (
	MinAge = 5
	MaxAge = 100
)

// ValidGrades lists the accepted grade values.
var ValidGrades = []string{"A", "B", "C", "D", "F"}

// Schema is the ordered list of column names every record carries.
// The first column is always "id".
type Schema []string

// DefaultSchema returns the columns a new store starts with.
func DefaultSchema() Schema {
	return Schema{ColumnID, ColumnName, ColumnAge, ColumnGrade}
}

// Has reports whether the schema contains column (exact match).
func (s Schema) Has(column string) bool {
	return s.Index(column) >= 0
}

// Index returns the position of column, or -1.
func (s Schema) Index(column string) int {
	for i, c := range s {
		if c == column {
			return i
		}
	}
	return -1
}

// Clone returns a copy that can be mutated independently.
func (s Schema) Clone() Schema {
	return append(Schema(nil), s...)
}

// normalizeSchema deduplicates columns and moves "id" to the front,
// inserting it when absent.
func normalizeSchema(columns []string) Schema {
	out := Schema{ColumnID}
	seen := map[string]bool{ColumnID: true}
	for _, c := range columns {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Record is one row, keyed by column name. All values are strings.
type Record map[string]string

// Align returns a copy of r whose keys equal schema exactly:
// unknown keys are dropped and missing ones are set to "".
func (r Record) Align(schema Schema) Record {
	out := make(Record, len(schema))
	for _, c := range schema {
		out[c] = r[c]
	}
	return out
}

// Values returns the record's values in schema order.
func (r Record) Values(schema Schema) []string {
	vals := make([]string, len(schema))
	for i, c := range schema {
		vals[i] = r[c]
	}
	return vals
}

// Validate checks rec against schema. Every schema column must be present.
// The built-in columns id, name, age and grade are checked for content when
// the schema still carries them; user-added columns accept any value.
func Validate(rec Record, schema Schema) error {
	for _, c := range schema {
		if _, ok := rec[c]; !ok {
			return missingField(c, schema)
		}
	}

	if schema.Has(ColumnID) && rec[ColumnID] == "" {
		return invalidField(ColumnID, "ID must be a non-empty string")
	}

	if schema.Has(ColumnName) && rec[ColumnName] == "" {
		return invalidField(ColumnName, "name must be a non-empty string")
	}

	if schema.Has(ColumnAge) {
		age, err := strconv.Atoi(strings.TrimSpace(rec[ColumnAge]))
		if err != nil {
			return invalidField(ColumnAge, "age must be a valid number")
		}
		if age < MinAge || age > MaxAge {
			return invalidField(ColumnAge, "age must be between 5 and 100")
		}
	}

	if schema.Has(ColumnGrade) && !isValidGrade(rec[ColumnGrade]) {
		return invalidField(ColumnGrade, "grade must be one of: A, B, C, D, F")
	}

	return nil
}

func isValidGrade(g string) bool {
	for _, v := range ValidGrades {
		if g == v {
			return true
		}
	}
	return false
}
