package store

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestGenerateDDL(t *testing.T) {
	ddl := GenerateDDL(Schema{"id", "name", `odd "col"`})

	expectations := []string{
		"CREATE TABLE records",
		`"id" TEXT`,
		`"name" TEXT`,
		`"odd ""col""" TEXT`,
	}
	for _, expected := range expectations {
		if !strings.Contains(ddl, expected) {
			t.Errorf("DDL should contain %q: %s", expected, ddl)
		}
	}
}

func TestStoreSyncAndQuery(t *testing.T) {
	s := setupTestStore(t, ".csv")
	mustAdd(t, s,
		student("1", "Ann", "20", "A"),
		student("2", "Bob", "30", "B"),
		student("3", "Cy", "40", "A"),
	)
	dbPath := filepath.Join(t.TempDir(), "mirror.db")

	needsSync, err := s.NeedsSync(dbPath)
	if err != nil {
		t.Fatalf("NeedsSync: %v", err)
	}
	if !needsSync {
		t.Error("missing mirror should need sync")
	}

	n, err := s.Sync(dbPath)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if n != 3 {
		t.Errorf("Sync returned %d, want 3", n)
	}

	needsSync, err = s.NeedsSync(dbPath)
	if err != nil {
		t.Fatalf("NeedsSync: %v", err)
	}
	if needsSync {
		t.Error("should not need sync right after Sync")
	}

	res, err := Query(dbPath, "SELECT name FROM records WHERE grade = 'A' ORDER BY CAST(age AS INTEGER)")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	want := [][]string{{"Ann"}, {"Cy"}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("rows = %v, want %v", res.Rows, want)
	}

	res, err = Query(dbPath, "SELECT COUNT(*) AS cnt FROM records")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Columns[0] != "cnt" || res.Rows[0][0] != "3" {
		t.Errorf("COUNT = %v %v, want cnt 3", res.Columns, res.Rows)
	}

	last, err := LastSync(dbPath)
	if err != nil {
		t.Fatalf("LastSync: %v", err)
	}
	if time.Since(last) > time.Hour {
		t.Errorf("LastSync = %v, want recent", last)
	}
}

func TestStoreSync_Stale(t *testing.T) {
	s := setupTestStore(t, ".json")
	mustAdd(t, s, student("1", "Ann", "20", "A"))
	dbPath := filepath.Join(t.TempDir(), "mirror.db")

	if _, err := s.Sync(dbPath); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	mustAdd(t, s, student("2", "Bob", "30", "B"))

	needsSync, err := s.NeedsSync(dbPath)
	if err != nil {
		t.Fatalf("NeedsSync: %v", err)
	}
	if !needsSync {
		t.Error("mirror should be stale after Add")
	}
}

func TestStoreSync_SchemaChange(t *testing.T) {
	s := setupTestStore(t, ".csv")
	mustAdd(t, s, student("1", "Ann", "20", "A"))
	dbPath := filepath.Join(t.TempDir(), "mirror.db")

	if _, err := s.Sync(dbPath); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if _, err := s.AddColumn("home room"); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if _, err := s.Sync(dbPath); err != nil {
		t.Fatalf("second Sync: %v", err)
	}

	res, err := Query(dbPath, `SELECT "home room" FROM records`)
	if err != nil {
		t.Fatalf("Query new column: %v", err)
	}
	if len(res.Rows) != 1 || res.Rows[0][0] != "" {
		t.Errorf("rows = %v, want one empty value", res.Rows)
	}
}

func TestQuery_BadSQL(t *testing.T) {
	s := setupTestStore(t, ".csv")
	dbPath := filepath.Join(t.TempDir(), "mirror.db")
	if _, err := s.Sync(dbPath); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if _, err := Query(dbPath, "SELEKT nothing"); err == nil {
		t.Error("expected error for invalid SQL")
	}
}
