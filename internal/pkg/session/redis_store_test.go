package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+s.Addr(), "test:")
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, s
}

func TestNewRedisStoreBadURL(t *testing.T) {
	if _, err := NewRedisStore("not a url", ""); err == nil {
		t.Fatal("expected error for malformed url")
	}
}

func TestSaveAndLookup(t *testing.T) {
	store, s := setupTestRedis(t)
	ctx := context.Background()

	if err := store.Save(ctx, "sess-1", 42, time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !s.Exists("test:sess-1") {
		t.Fatal("expected prefixed key in redis")
	}

	data, err := store.Lookup(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if data.AccountID != 42 {
		t.Errorf("expected account 42, got %d", data.AccountID)
	}
}

func TestLookupExpiredSession(t *testing.T) {
	store, s := setupTestRedis(t)
	ctx := context.Background()

	if err := store.Save(ctx, "short", 1, time.Second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s.FastForward(2 * time.Second)

	if _, err := store.Lookup(ctx, "short"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	if err := store.Save(ctx, "a", 1, time.Hour); err != nil {
		t.Fatalf("Save a failed: %v", err)
	}
	if err := store.Save(ctx, "b", 2, time.Hour); err != nil {
		t.Fatalf("Save b failed: %v", err)
	}

	if err := store.Revoke(ctx, "a"); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := store.Lookup(ctx, "a"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected revoked session to be gone, got %v", err)
	}
	if data, err := store.Lookup(ctx, "b"); err != nil || data.AccountID != 2 {
		t.Errorf("expected session b untouched, got %+v, %v", data, err)
	}

	// Revoking a missing session should not error
	if err := store.Revoke(ctx, "missing"); err != nil {
		t.Errorf("Revoke missing failed: %v", err)
	}
}
