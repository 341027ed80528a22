package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMigrationVersion(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		version int
		ok      bool
	}{
		{"numbered sql file", "001_chat_history.sql", 1, true},
		{"larger version", "012_add_index.sql", 12, true},
		{"not sql", "001_notes.txt", 0, false},
		{"no number", "abc_schema.sql", 0, false},
		{"zero version", "000_init.sql", 0, false},
		{"too short", "1.sql", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := migrationVersion(tc.file)
			if ok != tc.ok || v != tc.version {
				t.Errorf("migrationVersion(%q) = %d, %v; want %d, %v", tc.file, v, ok, tc.version, tc.ok)
			}
		})
	}
}

func TestListMigrations_SortsByVersion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_second.sql", "README.md", "001_first.sql"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := listMigrations(dir)
	if err != nil {
		t.Fatalf("listMigrations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(got))
	}
	if got[0].name != "001_first.sql" || got[1].name != "002_second.sql" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestListMigrations_MissingDir(t *testing.T) {
	if _, err := listMigrations(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient("not a url"); err == nil {
		t.Fatal("expected error for invalid Redis URL")
	}
}
