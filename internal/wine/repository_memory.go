package wine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryCatalogRepository backs tests and local development.
type InMemoryCatalogRepository struct {
	mu    sync.RWMutex
	wines map[string]*Wine
}

func NewInMemoryCatalogRepository() *InMemoryCatalogRepository {
	return &InMemoryCatalogRepository{wines: make(map[string]*Wine)}
}

func (r *InMemoryCatalogRepository) FindByNameVintage(
	_ context.Context,
	name string,
	vintage *int,
) (*Wine, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(name)
	for _, w := range r.wines {
		if !strings.Contains(strings.ToLower(w.Name), needle) {
			continue
		}
		if !vintageEqual(w.Vintage, vintage) {
			continue
		}
		copy := *w
		return &copy, nil
	}
	return nil, nil
}

func vintageEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *InMemoryCatalogRepository) Create(_ context.Context, w *Wine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now

	copy := *w
	r.wines[w.ID] = &copy
	return nil
}

func (r *InMemoryCatalogRepository) GetByID(_ context.Context, id string) (*Wine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.wines[id]
	if !ok {
		return nil, ErrNotFound
	}
	copy := *w
	return &copy, nil
}

// InMemoryCellarRepository backs tests and local development.
type InMemoryCellarRepository struct {
	mu      sync.RWMutex
	entries map[string]*UserWine
	catalog *InMemoryCatalogRepository
}

func NewInMemoryCellarRepository(catalog *InMemoryCatalogRepository) *InMemoryCellarRepository {
	return &InMemoryCellarRepository{
		entries: make(map[string]*UserWine),
		catalog: catalog,
	}
}

func (r *InMemoryCellarRepository) FindOwned(
	_ context.Context,
	userID, wineID string,
) (*UserWine, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, uw := range r.entries {
		if uw.UserID == userID && uw.WineID == wineID &&
			uw.DeletedAt == nil && uw.Status == StatusOwned {
			copy := *uw
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *InMemoryCellarRepository) Create(_ context.Context, uw *UserWine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if uw.ID == "" {
		uw.ID = uuid.New().String()
	}
	if uw.Status == "" {
		uw.Status = StatusOwned
	}
	if uw.Quantity == 0 {
		uw.Quantity = 1
	}
	now := time.Now()
	uw.CreatedAt = now
	uw.UpdatedAt = now

	copy := *uw
	r.entries[uw.ID] = &copy
	return nil
}

func (r *InMemoryCellarRepository) GetByID(
	_ context.Context,
	userID, userWineID string,
) (*UserWine, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	uw, ok := r.entries[userWineID]
	if !ok || uw.UserID != userID || uw.DeletedAt != nil {
		return nil, ErrNotFound
	}
	copy := *uw
	return &copy, nil
}

func (r *InMemoryCellarRepository) ListByUser(
	ctx context.Context,
	userID string,
) ([]CellarEntry, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []CellarEntry
	for _, uw := range r.entries {
		if uw.UserID != userID || uw.DeletedAt != nil {
			continue
		}
		w, err := r.catalog.GetByID(ctx, uw.WineID)
		if err != nil {
			continue
		}
		entries = append(entries, CellarEntry{UserWine: *uw, Wine: *w})
	}
	return entries, nil
}

func (r *InMemoryCellarRepository) UpdateQuantity(
	_ context.Context,
	userID, userWineID string,
	quantity int,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	uw, ok := r.entries[userWineID]
	if !ok || uw.UserID != userID || uw.DeletedAt != nil {
		return ErrNotFound
	}
	uw.Quantity = quantity
	uw.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryCellarRepository) UpdateStatus(
	_ context.Context,
	userID, userWineID, status string,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	uw, ok := r.entries[userWineID]
	if !ok || uw.UserID != userID || uw.DeletedAt != nil {
		return ErrNotFound
	}
	uw.Status = status
	uw.UpdatedAt = time.Now()
	return nil
}
