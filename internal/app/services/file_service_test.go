package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/pucknotes/server/internal/pkg/apperrors"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name   string
		suffix string
	}{
		{"Lecture 1 Notes.PDF", "-lecture-1-notes.pdf"},
		{"../../etc/passwd", "-passwd"},
		{"???.txt", "-file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := objectKey(tt.name)
			if !strings.HasSuffix(key, tt.suffix) {
				t.Errorf("objectKey(%q) = %q, want suffix %q", tt.name, key, tt.suffix)
			}
			if strings.ContainsAny(key, `/\`) {
				t.Errorf("objectKey(%q) = %q contains a path separator", tt.name, key)
			}
		})
	}

	if objectKey("same.pdf") == objectKey("same.pdf") {
		t.Error("expected distinct keys for the same name")
	}
}

func TestFileStoreFetchDelete(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	file, err := e.fileSvc.Store(ctx, alice.ID, upload("ch1.pdf", "chapter one"))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if file.FileName != "ch1.pdf" || file.UploadedBy != alice.ID || file.Size != int64(len("chapter one")) {
		t.Errorf("unexpected file record %+v", file)
	}

	got, rc, err := e.fileSvc.Fetch(ctx, file.ID)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "chapter one" || got.ObjectKey != file.ObjectKey {
		t.Errorf("fetched %q from %q", data, got.ObjectKey)
	}

	if err := e.fileSvc.Delete(ctx, file.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := e.store.objects[file.ObjectKey]; ok {
		t.Error("expected object to be removed")
	}
	if err := e.fileSvc.Delete(ctx, file.ID); err != nil {
		t.Errorf("deleting a missing file should succeed, got %v", err)
	}
	if _, _, err := e.fileSvc.Fetch(ctx, file.ID); !apperrors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestFileStoreRejectsEmptyUpload(t *testing.T) {
	e := newTestEnv(t)
	if _, err := e.fileSvc.Store(context.Background(), alice.ID, nil); !apperrors.Is(err, apperrors.ErrBadRequest) || apperrors.FieldOf(err) != "file" {
		t.Errorf("expected bad request on file, got %v", err)
	}
}

func TestFileStoreCleansUpWhenRecordFails(t *testing.T) {
	e := newTestEnv(t)
	e.files.failCreate = true

	if _, err := e.fileSvc.Store(context.Background(), alice.ID, upload("a.pdf", "x")); err == nil {
		t.Fatal("expected Store to fail")
	}
	if len(e.store.objects) != 0 || len(e.store.removed) != 1 {
		t.Errorf("expected the orphaned object to be removed, objects=%d removed=%v", len(e.store.objects), e.store.removed)
	}
}

func TestFetchMissingObject(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	file, err := e.fileSvc.Store(ctx, alice.ID, upload("gone.pdf", "x"))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	delete(e.store.objects, file.ObjectKey)

	if _, _, err := e.fileSvc.Fetch(ctx, file.ID); !apperrors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
