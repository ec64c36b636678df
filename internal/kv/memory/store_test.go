package memory

import (
	"context"
	"testing"
	"time"

	"jsonatlas/internal/domain/repositories"
)

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := s.Put(ctx, "k", "v1", repositories.PutOptions{}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	value, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || value != "v1" {
		t.Fatalf("Get(k) = %q ok=%v err=%v, want v1", value, ok, err)
	}

	// Overwrite
	if err := s.Put(ctx, "k", "v2", repositories.PutOptions{}); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	value, _, _ = s.Get(ctx, "k")
	if value != "v2" {
		t.Fatalf("Get after overwrite = %q, want v2", value)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("Get after delete reported present")
	}

	// Deleting a missing key is not an error
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete(missing): %v", err)
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	s := New()

	current := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	if err := s.Put(ctx, "short", "v", repositories.PutOptions{TTL: time.Minute}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "forever", "v", repositories.PutOptions{}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if _, ok, _ := s.Get(ctx, "short"); !ok {
		t.Fatal("short expired before its TTL")
	}

	current = current.Add(2 * time.Minute)

	if _, ok, _ := s.Get(ctx, "short"); ok {
		t.Fatal("short still present after its TTL")
	}
	if _, ok, _ := s.Get(ctx, "forever"); !ok {
		t.Fatal("entry without TTL expired")
	}

	if got := s.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New()
	if err := s.Put(ctx, "k", "v", repositories.PutOptions{}); err == nil {
		t.Fatal("Put with cancelled context succeeded")
	}
	if _, _, err := s.Get(ctx, "k"); err == nil {
		t.Fatal("Get with cancelled context succeeded")
	}
}
