package wine

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// CatalogRepository defines catalog (wines table) data access.
type CatalogRepository interface {
	// FindByNameVintage matches a candidate against the catalog:
	// case-insensitive substring match on name, exact match on vintage.
	// A nil vintage only matches catalog entries whose vintage is also
	// NULL. Returns (nil, nil) when nothing matches.
	FindByNameVintage(ctx context.Context, name string, vintage *int) (*Wine, error)

	Create(ctx context.Context, w *Wine) error
	GetByID(ctx context.Context, id string) (*Wine, error)
}

// CellarRepository defines user ownership (user_wines table) data access.
type CellarRepository interface {
	// FindOwned returns the caller's non-deleted "owned" record for a wine,
	// or (nil, nil) when the user does not own it.
	FindOwned(ctx context.Context, userID, wineID string) (*UserWine, error)

	Create(ctx context.Context, uw *UserWine) error
	GetByID(ctx context.Context, userID, userWineID string) (*UserWine, error)
	ListByUser(ctx context.Context, userID string) ([]CellarEntry, error)
	UpdateQuantity(ctx context.Context, userID, userWineID string, quantity int) error
	UpdateStatus(ctx context.Context, userID, userWineID, status string) error
}
