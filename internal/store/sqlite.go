package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// MirrorTable is the table Sync writes records into.
const MirrorTable = "records"

// QueryResult holds the columns and stringified rows of a SQL query.
type QueryResult struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Empty reports whether the query returned no rows.
func (q *QueryResult) Empty() bool {
	return len(q.Rows) == 0
}

// openMirrorDB opens a SQLite database holding a read-only copy of a store.
func openMirrorDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	return db, nil
}

// quoteIdent quotes a column name for SQLite. User-added columns need not be
// valid identifiers.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// GenerateDDL generates the CREATE TABLE statement for a schema.
// Every column is TEXT, matching the store's string-only values.
func GenerateDDL(schema Schema) string {
	cols := make([]string, len(schema))
	for i, name := range schema {
		cols[i] = quoteIdent(name) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", MirrorTable, strings.Join(cols, ",\n  "))
}

// GenerateMetaTableDDL generates the _meta table DDL.
func GenerateMetaTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS _meta (
  key TEXT PRIMARY KEY,
  value TEXT
)`
}

// ComputeFileHash computes a SHA256 hash of a file's contents.
func ComputeFileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Sync rebuilds the mirror database at dbPath from the bound file.
// It returns the number of records written.
func (s *Store) Sync(dbPath string) (int, error) {
	records, err := s.load()
	if err != nil {
		return 0, fmt.Errorf("reading records: %w", err)
	}

	hash, err := ComputeFileHash(s.path)
	if err != nil {
		return 0, fmt.Errorf("computing hash: %w", err)
	}

	db, err := openMirrorDB(dbPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DROP TABLE IF EXISTS " + MirrorTable); err != nil {
		return 0, fmt.Errorf("dropping table: %w", err)
	}
	if _, err := tx.Exec(GenerateDDL(s.schema)); err != nil {
		return 0, fmt.Errorf("creating table: %w", err)
	}
	if _, err := tx.Exec(GenerateMetaTableDDL()); err != nil {
		return 0, fmt.Errorf("creating meta table: %w", err)
	}

	cols := make([]string, len(s.schema))
	placeholders := make([]string, len(s.schema))
	for i, name := range s.schema {
		cols[i] = quoteIdent(name)
		placeholders[i] = "?"
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		MirrorTable, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	for i, rec := range records {
		values := make([]any, len(s.schema))
		for j, name := range s.schema {
			values[j] = rec[name]
		}
		if _, err := tx.Exec(insert, values...); err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", i+1, err)
		}
	}

	if err := setMeta(tx, "file_hash", hash); err != nil {
		return 0, fmt.Errorf("updating hash: %w", err)
	}
	if err := setMeta(tx, "last_sync", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("updating sync time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(records), nil
}

// NeedsSync reports whether the mirror at dbPath is missing or was built
// from different file contents.
func (s *Store) NeedsSync(dbPath string) (bool, error) {
	if s.path == "" {
		return false, ErrNotConfigured
	}
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}

	current, err := ComputeFileHash(s.path)
	if err != nil {
		return true, err
	}

	db, err := openMirrorDB(dbPath)
	if err != nil {
		return true, err
	}
	defer db.Close()

	if _, err := db.Exec(GenerateMetaTableDDL()); err != nil {
		return true, fmt.Errorf("creating meta table: %w", err)
	}

	stored, err := getMeta(db, "file_hash")
	if err != nil {
		return true, err
	}
	return current != stored, nil
}

// LastSync returns when the mirror at dbPath was last rebuilt.
// The zero time means never.
func LastSync(dbPath string) (time.Time, error) {
	db, err := openMirrorDB(dbPath)
	if err != nil {
		return time.Time{}, err
	}
	defer db.Close()

	if _, err := db.Exec(GenerateMetaTableDDL()); err != nil {
		return time.Time{}, fmt.Errorf("creating meta table: %w", err)
	}

	v, err := getMeta(db, "last_sync")
	if err != nil || v == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, v)
}

// Query runs sql against the mirror at dbPath.
func Query(dbPath, query string) (*QueryResult, error) {
	db, err := openMirrorDB(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &QueryResult{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = sqlValueString(v)
		}
		result.Rows = append(result.Rows, row)
	}

	return result, rows.Err()
}

func sqlValueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// metaExecer is satisfied by *sql.DB and *sql.Tx.
type metaExecer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func setMeta(db metaExecer, key, value string) error {
	_, err := db.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

func getMeta(db *sql.DB, key string) (string, error) {
	var v sql.NullString
	err := db.QueryRow("SELECT value FROM _meta WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v.String, nil
}
