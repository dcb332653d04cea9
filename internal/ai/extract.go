package ai

import (
	"encoding/json"
	"strings"
)

// ExtractObject recovers a single JSON object from free-form model output.
// Models wrap JSON in prose or code fences, so we take the substring from
// the first "{" to the last "}" and try to parse that. Returns nil when no
// object can be recovered; never returns an error.
func ExtractObject(text string) map[string]any {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return nil
	}
	return parsed
}

// ExtractArray recovers a JSON array of objects from free-form model output.
// Returns an empty slice when no array can be recovered; never returns an
// error.
func ExtractArray(text string) []map[string]any {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return []map[string]any{}
	}

	var parsed []map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return []map[string]any{}
	}
	return parsed
}
