package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/inmengwi/wine-collector/internal/wine"
)

// DefaultCacheTTL matches the product default of one day per (user, query).
const DefaultCacheTTL = 24 * time.Hour

// Recommender is the AI capability the service consumes.
type Recommender interface {
	PairingRecommendations(ctx context.Context, query string, wines []map[string]any) map[string]any
}

// CellarReader lists the caller's collection for scoring.
type CellarReader interface {
	ListByUser(ctx context.Context, userID string) ([]wine.CellarEntry, error)
}

type Service struct {
	ai     Recommender
	cellar CellarReader
	cache  CacheRepository
	ttl    time.Duration
}

func NewService(ai Recommender, cellar CellarReader, cache CacheRepository) *Service {
	return &Service{ai: ai, cellar: cellar, cache: cache, ttl: DefaultCacheTTL}
}

// Result wraps a recommendation response with its cache provenance.
type Result struct {
	Response map[string]any
	Cached   bool
}

// Recommend scores the user's owned wines against a food/occasion query.
func (s *Service) Recommend(ctx context.Context, userID, query string) (*Result, error) {
	queryHash := hashQuery(query)

	if cached, ok, err := s.cache.Get(ctx, userID, queryHash); err == nil && ok {
		return &Result{Response: cached, Cached: true}, nil
	}

	entries, err := s.cellar.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	wines := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		if e.UserWine.Status != wine.StatusOwned {
			continue
		}
		wines = append(wines, wineSnapshot(e))
	}

	response := s.ai.PairingRecommendations(ctx, query, wines)

	// A cache write failure only costs a future AI call.
	_ = s.cache.Put(ctx, userID, queryHash, response, s.ttl)

	return &Result{Response: response}, nil
}

func hashQuery(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// wineSnapshot flattens a cellar entry into the compact shape the pairing
// prompt embeds.
func wineSnapshot(e wine.CellarEntry) map[string]any {
	return map[string]any{
		"id":                    e.Wine.ID,
		"name":                  e.Wine.Name,
		"producer":              e.Wine.Producer,
		"vintage":               e.Wine.Vintage,
		"type":                  e.Wine.Type,
		"region":                e.Wine.Region,
		"country":               e.Wine.Country,
		"food_pairing":          e.Wine.FoodPairing,
		"flavor_notes":          e.Wine.FlavorNotes,
		"drinking_window_start": e.Wine.DrinkingWindowStart,
		"drinking_window_end":   e.Wine.DrinkingWindowEnd,
		"quantity":              e.UserWine.Quantity,
	}
}
