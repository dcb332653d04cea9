package recommend

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	response  map[string]any
	expiresAt time.Time
}

// InMemoryCacheRepository backs tests and local development.
type InMemoryCacheRepository struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewInMemoryCacheRepository() *InMemoryCacheRepository {
	return &InMemoryCacheRepository{entries: make(map[string]cacheEntry)}
}

func (r *InMemoryCacheRepository) Get(
	_ context.Context,
	userID, queryHash string,
) (map[string]any, bool, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[userID+"/"+queryHash]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.response, true, nil
}

func (r *InMemoryCacheRepository) Put(
	_ context.Context,
	userID, queryHash string,
	response map[string]any,
	ttl time.Duration,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[userID+"/"+queryHash] = cacheEntry{
		response:  response,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}
