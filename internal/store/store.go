package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Store is a schema plus the file it is bound to. Every operation loads the
// whole file, works on the records in memory, and rewrites the whole file.
//
// A Store is not safe for concurrent use, and two Stores bound to the same
// file see last-write-wins semantics.
type Store struct {
	schema Schema
	path   string
	format Format
}

// StoreInfo summarizes a bound store.
type StoreInfo struct {
	Path    string `json:"path"`
	Format  Format `json:"format"`
	Columns Schema `json:"columns"`
	Records int    `json:"records"`
	Size    int64  `json:"size"`
}

// New creates an unbound store with the given schema.
func New(schema Schema) *Store {
	return &Store{schema: normalizeSchema(schema)}
}

// NewDefault creates an unbound store with DefaultSchema.
func NewDefault() *Store {
	return New(DefaultSchema())
}

// Schema returns a copy of the current columns.
func (s *Store) Schema() Schema {
	return s.schema.Clone()
}

// Path returns the bound file, or "" before SetPath.
func (s *Store) Path() string {
	return s.path
}

// Format returns the bound file's encoding.
func (s *Store) Format() Format {
	return s.format
}

// SetPath binds the store to path, or to defaultPath when path is empty.
// The path is made absolute and its extension selects the format.
//
// A missing file is created with the current schema (a header-only CSV or an
// empty JSON array). An existing file's columns replace the current schema,
// so columns added by an earlier session are kept; an empty file keeps the
// current schema.
func (s *Store) SetPath(path, defaultPath string) (string, Format, error) {
	if path == "" {
		path = defaultPath
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return "", "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolving path: %w", err)
	}

	_, err = os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			return "", "", fmt.Errorf("creating directory: %w", err)
		}
		if err := writeFile(abs, format, s.schema, nil); err != nil {
			return "", "", err
		}
		slog.Debug("created store file", "path", abs, "format", format)
	case err != nil:
		return "", "", fmt.Errorf("checking file: %w", err)
	default:
		columns, _, err := readFile(abs, format)
		if err != nil {
			return "", "", err
		}
		if len(columns) > 0 {
			s.schema = normalizeSchema(columns)
		}
	}

	s.path = abs
	s.format = format
	return abs, format, nil
}

// readFile decodes a whole store file.
func readFile(path string, format Format) ([]string, []Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading file: %w", err)
	}
	return codecFor(format).decode(bytes.NewReader(data))
}

// writeFile truncates path and writes every record in schema order.
func writeFile(path string, format Format, schema Schema, records []Record) error {
	var buf bytes.Buffer
	if err := codecFor(format).encode(&buf, schema, records); err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

// load reads the bound file and aligns every record to the schema.
func (s *Store) load() ([]Record, error) {
	if s.path == "" {
		return nil, ErrNotConfigured
	}

	_, rows, err := readFile(s.path, s.format)
	if err != nil {
		return nil, err
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = row.Align(s.schema)
	}

	slog.Debug("loaded records", "path", s.path, "count", len(records))
	return records, nil
}

// save rewrites the bound file with schema as the column set.
func (s *Store) save(schema Schema, records []Record) error {
	if err := writeFile(s.path, s.format, schema, records); err != nil {
		return err
	}
	slog.Debug("saved records", "path", s.path, "count", len(records))
	return nil
}

// Add validates rec and appends it. Records whose id already exists are
// rejected with ErrDuplicateID.
func (s *Store) Add(rec Record) error {
	if s.path == "" {
		return ErrNotConfigured
	}

	if err := Validate(rec, s.schema); err != nil {
		return err
	}

	records, err := s.load()
	if err != nil {
		return err
	}

	id := rec[ColumnID]
	for _, existing := range records {
		if existing[ColumnID] == id {
			return fmt.Errorf("%w: %q already exists", ErrDuplicateID, id)
		}
	}

	return s.save(s.schema, append(records, rec.Align(s.schema)))
}

// RecordSet is the result of ViewAll.
type RecordSet struct {
	Columns Schema   `json:"columns"`
	Records []Record `json:"records"`
}

// Empty reports whether the store holds no records.
func (rs *RecordSet) Empty() bool {
	return len(rs.Records) == 0
}

// Rows returns the records as value rows in column order.
func (rs *RecordSet) Rows() [][]string {
	rows := make([][]string, len(rs.Records))
	for i, rec := range rs.Records {
		rows[i] = rec.Values(rs.Columns)
	}
	return rows
}

// ViewAll returns every record.
func (s *Store) ViewAll() (*RecordSet, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	return &RecordSet{Columns: s.Schema(), Records: records}, nil
}

// Projection is the result of ViewColumns.
type Projection struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Empty reports whether the store holds no records.
func (p *Projection) Empty() bool {
	return len(p.Rows) == 0
}

// ViewColumns returns, for each record, the values of the requested columns
// in the requested order. A requested column a record does not have is
// skipped for that record rather than reported, so rows can be shorter than
// Columns.
func (s *Store) ViewColumns(columns []string) (*Projection, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}

	p := &Projection{Columns: append([]string(nil), columns...)}
	for _, rec := range records {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			if v, ok := rec[c]; ok {
				row = append(row, v)
			}
		}
		p.Rows = append(p.Rows, row)
	}
	return p, nil
}

// Update merges patch into every record whose id matches. Only keys that
// are schema columns are applied; AddColumn must be called first to update a
// new column. Merged values are not re-validated. The file is rewritten only
// when a record matched.
func (s *Store) Update(id string, patch Record) (bool, error) {
	records, err := s.load()
	if err != nil {
		return false, err
	}

	updated := false
	for _, rec := range records {
		if rec[ColumnID] != id {
			continue
		}
		for k, v := range patch {
			if s.schema.Has(k) {
				rec[k] = v
			} else {
				slog.Debug("ignoring unknown column in update", "column", k)
			}
		}
		updated = true
	}

	if !updated {
		return false, nil
	}
	return true, s.save(s.schema, records)
}

// Delete removes every record whose id matches. The file is rewritten only
// when something was removed.
func (s *Store) Delete(id string) (bool, error) {
	records, err := s.load()
	if err != nil {
		return false, err
	}

	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec[ColumnID] != id {
			kept = append(kept, rec)
		}
	}

	if len(kept) == len(records) {
		return false, nil
	}
	return true, s.save(s.schema, kept)
}

// AddColumn lowercases name and appends it to the schema, giving every
// existing record an empty value. It returns the normalized name, or
// ErrColumnConflict if a column with that name exists in any case.
func (s *Store) AddColumn(name string) (string, error) {
	lower := cases.Lower(language.Und)
	name = lower.String(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidColumn)
	}

	for _, c := range s.schema {
		if lower.String(c) == name {
			return name, fmt.Errorf("%w: %q", ErrColumnConflict, name)
		}
	}

	records, err := s.load()
	if err != nil {
		return name, err
	}

	schema := append(s.schema.Clone(), name)
	for _, rec := range records {
		rec[name] = ""
	}

	if err := s.save(schema, records); err != nil {
		return name, err
	}
	s.schema = schema
	return name, nil
}

// RemoveColumn drops name from the schema and from every record.
// The id column cannot be removed.
func (s *Store) RemoveColumn(name string) error {
	idx := s.schema.Index(name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrColumnMissing, name)
	}
	if name == ColumnID {
		return ErrColumnProtected
	}

	records, err := s.load()
	if err != nil {
		return err
	}

	schema := append(s.schema[:idx:idx], s.schema[idx+1:]...)
	for _, rec := range records {
		delete(rec, name)
	}

	if err := s.save(schema, records); err != nil {
		return err
	}
	s.schema = schema
	return nil
}

// SearchResult is the result of Search.
type SearchResult struct {
	Columns Schema   `json:"columns"`
	Matches []Record `json:"matches"`
	// Total is the number of records searched.
	Total int `json:"total"`
	// MissingFields lists criteria fields that no record has.
	MissingFields []string `json:"missing_fields,omitempty"`
}

// NoRecords reports whether the store was empty.
func (r *SearchResult) NoRecords() bool {
	return r.Total == 0
}

// NoMatches reports whether records existed but none matched.
func (r *SearchResult) NoMatches() bool {
	return r.Total > 0 && len(r.Matches) == 0
}

// Rows returns the matches as value rows in column order.
func (r *SearchResult) Rows() [][]string {
	rows := make([][]string, len(r.Matches))
	for i, rec := range r.Matches {
		rows[i] = rec.Values(r.Columns)
	}
	return rows
}

// Search returns the records that match every criterion, in file order.
// A criterion matches when the record has the field and its value contains
// the term, compared with Unicode case folding. A field missing from a
// record disqualifies it; each such field is logged once per search.
func (s *Store) Search(criteria map[string]string) (*SearchResult, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(criteria))
	for f := range criteria {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	fold := cases.Fold()
	terms := make(map[string]string, len(criteria))
	for _, f := range fields {
		terms[f] = fold.String(criteria[f])
	}

	result := &SearchResult{Columns: s.Schema(), Total: len(records)}
	missing := make(map[string]bool)

	for _, rec := range records {
		matched := true
		for _, f := range fields {
			v, ok := rec[f]
			if !ok {
				if !missing[f] {
					missing[f] = true
					result.MissingFields = append(result.MissingFields, f)
					slog.Warn("field not found in records", "field", f)
				}
				matched = false
				break
			}
			if !strings.Contains(fold.String(v), terms[f]) {
				matched = false
				break
			}
		}
		if matched {
			result.Matches = append(result.Matches, rec)
		}
	}

	return result, nil
}

// Info returns a summary of the bound store.
func (s *Store) Info() (*StoreInfo, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}

	info := &StoreInfo{
		Path:    s.path,
		Format:  s.format,
		Columns: s.Schema(),
		Records: len(records),
	}
	if stat, err := os.Stat(s.path); err == nil {
		info.Size = stat.Size()
	}
	return info, nil
}
