package scan

import "strings"

// MergeWineData folds a new observation into accumulated wine data.
// A field only overwrites when the incoming value actually says something:
// nil, blank strings, and empty lists are skipped, so refinement can add or
// replace information but never erase what an earlier image established.
// The input maps are not mutated.
func MergeWineData(existing, incoming WineData) WineData {
	merged := make(WineData, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}

	for k, v := range incoming {
		if isEmptyValue(v) {
			continue
		}
		merged[k] = v
	}

	return merged
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	}
	return false
}

// ConfidenceOf reads the confidence of one observation, defaulting to 0.8
// when the model did not report one.
func ConfidenceOf(data WineData) float64 {
	switch v := data["confidence"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0.8
}

// MergeConfidence keeps session confidence monotonically non-decreasing.
func MergeConfidence(existing *float64, incoming float64) float64 {
	if existing == nil {
		return incoming
	}
	if *existing > incoming {
		return *existing
	}
	return incoming
}
