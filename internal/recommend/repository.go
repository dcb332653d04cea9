package recommend

import (
	"context"
	"time"
)

// CacheRepository stores recommendation responses keyed by user and
// normalized query, so repeated pairing questions skip the AI call.
type CacheRepository interface {
	// Get returns the cached response when present and not expired.
	Get(ctx context.Context, userID, queryHash string) (map[string]any, bool, error)
	Put(ctx context.Context, userID, queryHash string, response map[string]any, ttl time.Duration) error
}
