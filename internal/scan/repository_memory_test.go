package scan

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryRepository_UpdateDetectsStaleVersion(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	session := &Session{
		UserID:   "user-1",
		ScanID:   "scan_abc",
		WineData: WineData{"name": "Opus One"},
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatal(err)
	}

	a, err := repo.Get(ctx, "user-1", "scan_abc")
	if err != nil {
		t.Fatal(err)
	}
	b, err := repo.Get(ctx, "user-1", "scan_abc")
	if err != nil {
		t.Fatal(err)
	}

	a.WineData["vintage"] = 2018
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	if a.Version != 2 {
		t.Errorf("version after update = %d, want 2", a.Version)
	}

	b.WineData["vintage"] = 2019
	if err := repo.Update(ctx, b); !errors.Is(err, ErrConflict) {
		t.Errorf("stale update: expected ErrConflict, got %v", err)
	}

	stored, err := repo.Get(ctx, "user-1", "scan_abc")
	if err != nil {
		t.Fatal(err)
	}
	if stored.WineData["vintage"] != 2018 {
		t.Errorf("winning update lost: %v", stored.WineData["vintage"])
	}
}

func TestInMemoryRepository_GetClonesState(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &Session{
		UserID:   "user-1",
		ScanID:   "scan_abc",
		WineData: WineData{"name": "Opus One"},
	}); err != nil {
		t.Fatal(err)
	}

	got, _ := repo.Get(ctx, "user-1", "scan_abc")
	got.WineData["name"] = "tampered"

	fresh, _ := repo.Get(ctx, "user-1", "scan_abc")
	if fresh.WineData["name"] != "Opus One" {
		t.Error("repository state leaked through returned session")
	}
}
