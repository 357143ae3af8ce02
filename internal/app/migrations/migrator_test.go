package migrations

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMigrationVersion(t *testing.T) {
	tests := map[string]string{
		"001_init.sql":              "001",
		"migrations/002_likes.sql":  "002",
		"003_add_reports_index.sql": "003",
		"noversion.sql":             "noversion.sql",
	}
	for in, want := range tests {
		if got := migrationVersion(in); got != want {
			t.Errorf("migrationVersion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPendingFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "README.md", "010_c.sql"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "999_dir.sql"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := pendingFiles(dir)
	if err != nil {
		t.Fatalf("pendingFiles failed: %v", err)
	}
	want := []string{"001_a.sql", "002_b.sql", "010_c.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := pendingFiles(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
