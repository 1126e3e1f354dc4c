package sqlitemigrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyRecordsMigration(t *testing.T) {
	db := openMemoryDB(t)
	fsys := fstest.MapFS{
		"001_events.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE events(id INTEGER PRIMARY KEY);\n-- +migrate Down\nDROP TABLE events;"),
		},
	}

	applied, err := Apply(context.Background(), db, fsys, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(applied) != 1 || applied[0] != "001_events.sql" {
		t.Fatalf("applied = %v, want [001_events.sql]", applied)
	}
	if got := countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 1 {
		t.Fatalf("migration rows = %d, want 1", got)
	}
	if !tableExists(t, db, "events") {
		t.Fatal("expected events table")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := openMemoryDB(t)
	fsys := fstest.MapFS{
		"001_events.sql": &fstest.MapFile{Data: []byte("CREATE TABLE events(id INTEGER PRIMARY KEY);")},
	}

	if _, err := Apply(context.Background(), db, fsys, ""); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	applied, err := Apply(context.Background(), db, fsys, "")
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if len(applied) != 0 {
		t.Fatalf("applied on replay = %v, want none", applied)
	}
	if got := countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 1 {
		t.Fatalf("migration rows = %d, want 1", got)
	}
}

func TestApplyOrdersByFileName(t *testing.T) {
	db := openMemoryDB(t)
	fsys := fstest.MapFS{
		"002_index.sql":  &fstest.MapFile{Data: []byte("CREATE INDEX events_name ON events(name);")},
		"001_events.sql": &fstest.MapFile{Data: []byte("CREATE TABLE events(id INTEGER PRIMARY KEY, name TEXT);")},
	}

	applied, err := Apply(context.Background(), db, fsys, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(applied) != 2 || applied[0] != "001_events.sql" || applied[1] != "002_index.sql" {
		t.Fatalf("applied = %v", applied)
	}
}

func TestApplyDoesNotRecordFailedMigration(t *testing.T) {
	db := openMemoryDB(t)
	bad := fstest.MapFS{
		"001_events.sql": &fstest.MapFile{Data: []byte("CREAT TABLE events(id INTEGER);")},
	}
	if _, err := Apply(context.Background(), db, bad, ""); err == nil {
		t.Fatal("expected bad migration to fail")
	}
	if got := countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 0 {
		t.Fatalf("migration rows = %d, want 0", got)
	}

	good := fstest.MapFS{
		"001_events.sql": &fstest.MapFile{Data: []byte("CREATE TABLE events(id INTEGER PRIMARY KEY);")},
	}
	if _, err := Apply(context.Background(), db, good, ""); err != nil {
		t.Fatalf("apply fixed migration: %v", err)
	}
	if got := countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 1 {
		t.Fatalf("migration rows = %d, want 1", got)
	}
}

func TestApplyKeysIncludeDirectory(t *testing.T) {
	db := openMemoryDB(t)
	fsys := fstest.MapFS{
		"events/001_events.sql": &fstest.MapFile{Data: []byte("CREATE TABLE events(id INTEGER PRIMARY KEY);")},
	}

	applied, err := Apply(context.Background(), db, fsys, "events")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(applied) != 1 || applied[0] != "events/001_events.sql" {
		t.Fatalf("applied = %v, want [events/001_events.sql]", applied)
	}
}

func TestUpSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "up only", content: "CREATE TABLE a(id INT);", want: "CREATE TABLE a(id INT);"},
		{name: "up marker", content: "-- +migrate Up\nSELECT 1;", want: "\nSELECT 1;"},
		{name: "up and down", content: "-- +migrate Up\nSELECT 1;\n-- +migrate Down\nSELECT 2;", want: "\nSELECT 1;\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := UpSection(tc.content); got != tc.want {
				t.Fatalf("UpSection = %q, want %q", got, tc.want)
			}
		})
	}
}

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func countRows(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var value int64
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return value
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var found string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", name).Scan(&found)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		t.Fatalf("check table %s: %v", name, err)
	}
	return found == name
}
