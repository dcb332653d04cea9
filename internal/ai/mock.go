package ai

// MockWineData returns development wine data. Always carries "mock": true so
// a degraded-mode scan can never be mistaken for a real recognition.
func MockWineData() map[string]any {
	return map[string]any{
		"name":                  "Chateau Margaux",
		"producer":              "Chateau Margaux",
		"vintage":               2015,
		"grape_variety":         []any{"Cabernet Sauvignon", "Merlot", "Petit Verdot"},
		"region":                "Margaux",
		"country":               "France",
		"appellation":           "Margaux AOC",
		"abv":                   13.5,
		"type":                  "red",
		"body":                  5,
		"tannin":                4,
		"acidity":               3,
		"sweetness":             1,
		"food_pairing":          []any{"Steak", "Rack of lamb", "Aged cheese"},
		"flavor_notes":          []any{"Blackcurrant", "Cedar", "Violet"},
		"serving_temp_min":      16,
		"serving_temp_max":      18,
		"drinking_window_start": 2025,
		"drinking_window_end":   2045,
		"description":           "Bordeaux first-growth grand cru with an elegant, complex aroma.",
		"confidence":            0.95,
		"mock":                  true,
	}
}

// MockRecommendations builds deterministic recommendations from the first
// three wines so development works without a text provider.
func MockRecommendations(wines []map[string]any) map[string]any {
	recommendations := []any{}

	for i, wine := range wines {
		if i >= 3 {
			break
		}
		name, _ := wine["name"].(string)
		if name == "" {
			name = "This wine"
		}
		recommendations = append(recommendations, map[string]any{
			"wine_id":          wine["id"],
			"rank":             i + 1,
			"match_score":      0.95 - float64(i)*0.05,
			"reason":           name + " has a flavor profile that suits the requested dish.",
			"pairing_tips":     "Decant 15 minutes before serving.",
			"drinking_urgency": "optimal",
		})
	}

	return map[string]any{
		"recommendations": recommendations,
		"general_advice":  "A full-bodied red pairs well with the requested dish.",
	}
}
