package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	ms := NewMemStore()

	if _, err := ms.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first save, got %v", err)
	}

	want := sampleData()
	if err := ms.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := ms.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSameData(t, got, want)
}

func TestMemStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	ms := NewMemStore()
	if err := ms.Save(ctx, sampleData()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := ms.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got.Transactions[0].Category = "changed"

	again, err := ms.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if again.Transactions[0].Category != "Shopping" {
		t.Fatalf("caller mutation leaked into the backend")
	}
}

func TestMemStoreInjectedErrors(t *testing.T) {
	ctx := context.Background()
	ms := NewMemStore()

	ms.SaveErr = errors.New("quota exceeded")
	if err := ms.Save(ctx, sampleData()); err == nil {
		t.Fatalf("expected injected save error")
	}

	ms.SaveErr = nil
	ms.LoadErr = ErrCorrupt
	if _, err := ms.Load(ctx); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected injected load error, got %v", err)
	}
}
