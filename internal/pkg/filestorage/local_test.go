package filestorage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStorage(t *testing.T) (*LocalStorage, string) {
	dir := filepath.Join(t.TempDir(), "objects")
	ls, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}
	return ls, dir
}

func TestLocalStoragePutGetRemove(t *testing.T) {
	ls, dir := newTestStorage(t)
	ctx := context.Background()

	if err := ls.Put(ctx, "abc-notes.pdf", strings.NewReader("hello"), 5, "application/pdf"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "abc-notes.pdf")); err != nil {
		t.Fatalf("expected object on disk: %v", err)
	}

	rc, err := ls.Get(ctx, "abc-notes.pdf")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected %q, got %q", "hello", data)
	}

	if err := ls.Remove(ctx, "abc-notes.pdf"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := ls.Get(ctx, "abc-notes.pdf"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound after remove, got %v", err)
	}
}

func TestLocalStorageRemoveMissingIsNotAnError(t *testing.T) {
	ls, _ := newTestStorage(t)
	if err := ls.Remove(context.Background(), "never-written.txt"); err != nil {
		t.Errorf("expected nil for missing object, got %v", err)
	}
}

func TestLocalStorageRejectsEscapingKeys(t *testing.T) {
	ls, _ := newTestStorage(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "../secret", "a/b", `a\b`} {
		if err := ls.Put(ctx, key, strings.NewReader("x"), 1, "text/plain"); err == nil {
			t.Errorf("Put(%q) expected error", key)
		}
		if _, err := ls.Get(ctx, key); err == nil {
			t.Errorf("Get(%q) expected error", key)
		}
	}
}
