package wine

import (
	"context"
	"errors"
	"testing"
)

func newTestService() (*Service, *InMemoryCatalogRepository, *InMemoryCellarRepository) {
	catalog := NewInMemoryCatalogRepository()
	cellar := NewInMemoryCellarRepository(catalog)
	return NewService(catalog, cellar), catalog, cellar
}

func TestAddToCellar_CreatesCatalogWine(t *testing.T) {
	svc, catalog, _ := newTestService()
	vintage := 2018

	uw, err := svc.AddToCellar(context.Background(), "user-1", AddWineInput{
		Name:    "Opus One",
		Vintage: &vintage,
		Type:    TypeRed,
	})
	if err != nil {
		t.Fatalf("AddToCellar failed: %v", err)
	}

	if uw.Quantity != 1 || uw.Status != StatusOwned {
		t.Errorf("unexpected ownership record: %+v", uw)
	}

	w, err := catalog.GetByID(context.Background(), uw.WineID)
	if err != nil {
		t.Fatalf("catalog wine not created: %v", err)
	}
	if w.Name != "Opus One" {
		t.Errorf("unexpected catalog wine: %+v", w)
	}
}

func TestAddToCellar_ExistingWineBumpsQuantity(t *testing.T) {
	svc, catalog, _ := newTestService()
	vintage := 2018
	existing := &Wine{Name: "Opus One", Vintage: &vintage, Type: TypeRed}
	if err := catalog.Create(context.Background(), existing); err != nil {
		t.Fatal(err)
	}

	first, err := svc.AddToCellar(context.Background(), "user-1", AddWineInput{
		ExistingWineID: existing.ID,
		Quantity:       2,
	})
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	second, err := svc.AddToCellar(context.Background(), "user-1", AddWineInput{
		ExistingWineID: existing.ID,
	})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if second.ID != first.ID {
		t.Error("re-adding an owned wine should reuse the ownership row")
	}
	if second.Quantity != 3 {
		t.Errorf("quantity = %d, want 3", second.Quantity)
	}
}

func TestAddToCellar_RequiresNameWithoutExistingID(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.AddToCellar(context.Background(), "user-1", AddWineInput{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestAddToCellar_UnknownExistingWine(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddToCellar(context.Background(), "user-1", AddWineInput{
		ExistingWineID: "missing",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatus_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.UpdateStatus(context.Background(), "user-1", "uw-1", "drunk")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatus_ConsumedLeavesCellarListing(t *testing.T) {
	svc, _, _ := newTestService()

	uw, err := svc.AddToCellar(context.Background(), "user-1", AddWineInput{Name: "Opus One"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateStatus(context.Background(), "user-1", uw.ID, StatusConsumed); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	entries, err := svc.ListCellar(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].UserWine.Status != StatusConsumed {
		t.Errorf("consumed bottle should remain listed with its status: %+v", entries)
	}
}

func TestUpdateQuantity_RejectsNegative(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.UpdateQuantity(context.Background(), "user-1", "uw-1", -1); err == nil {
		t.Error("expected error for negative quantity")
	}
}

func TestFindByNameVintage_Matching(t *testing.T) {
	catalog := NewInMemoryCatalogRepository()
	ctx := context.Background()

	vintage := 2018
	if err := catalog.Create(ctx, &Wine{Name: "Opus One", Vintage: &vintage, Type: TypeRed}); err != nil {
		t.Fatal(err)
	}
	if err := catalog.Create(ctx, &Wine{Name: "NV Champagne", Type: TypeSparkling}); err != nil {
		t.Fatal(err)
	}

	// Case-insensitive substring match on the name.
	got, err := catalog.FindByNameVintage(ctx, "opus", &vintage)
	if err != nil || got == nil {
		t.Fatalf("expected substring match, got %v err=%v", got, err)
	}

	// A different vintage is a different wine.
	other := 2019
	if got, _ := catalog.FindByNameVintage(ctx, "Opus One", &other); got != nil {
		t.Errorf("vintage mismatch should not match: %+v", got)
	}

	// Missing vintage only matches wines without one.
	if got, _ := catalog.FindByNameVintage(ctx, "Opus One", nil); got != nil {
		t.Errorf("nil vintage matched a vintaged wine: %+v", got)
	}
	if got, _ := catalog.FindByNameVintage(ctx, "Champagne", nil); got == nil {
		t.Error("nil vintage should match a non-vintage wine")
	}
}
