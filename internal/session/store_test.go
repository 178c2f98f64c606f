package session

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, _, err := s.Load(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("empty load err = %v, want ErrNoSession", err)
	}

	if err := s.Save(ctx, "access", "refresh"); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, refresh, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if token != "access" || refresh != "refresh" {
		t.Fatalf("loaded %q/%q", token, refresh)
	}
}

func TestMemoryStoreClear(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Save(ctx, "access", "refresh"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, _, err := s.Load(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("post-clear load err = %v, want ErrNoSession", err)
	}
	// Clearing twice is fine.
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestMemoryStoreEmptyPairIsStillASession(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Save(ctx, "", ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, _, err := s.Load(ctx); err != nil {
		t.Fatalf("load of saved empty pair: %v", err)
	}
}
