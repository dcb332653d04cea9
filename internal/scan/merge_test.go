package scan

import (
	"reflect"
	"testing"
)

func TestMergeWineData_EmptyIncomingIsNoop(t *testing.T) {
	existing := WineData{"name": "Opus One", "vintage": 2018}

	merged := MergeWineData(existing, WineData{})
	if !reflect.DeepEqual(merged, existing) {
		t.Errorf("merge with empty incoming changed data: %v", merged)
	}
}

func TestMergeWineData_EmptyValuesDoNotErase(t *testing.T) {
	existing := WineData{
		"name":          "Opus One",
		"vintage":       2018,
		"grape_variety": []any{"Cabernet Sauvignon"},
	}
	incoming := WineData{
		"name":          "  ",
		"vintage":       nil,
		"grape_variety": []any{},
		"region":        "Napa Valley",
	}

	merged := MergeWineData(existing, incoming)

	if merged["name"] != "Opus One" {
		t.Errorf("blank name overwrote existing: %v", merged["name"])
	}
	if merged["vintage"] != 2018 {
		t.Errorf("nil vintage overwrote existing: %v", merged["vintage"])
	}
	if got := merged["grape_variety"].([]any); len(got) != 1 {
		t.Errorf("empty list overwrote existing: %v", got)
	}
	if merged["region"] != "Napa Valley" {
		t.Errorf("new field not merged: %v", merged["region"])
	}
}

func TestMergeWineData_NonEmptyOverwrites(t *testing.T) {
	existing := WineData{"name": "Opus", "producer": "Unknown"}
	incoming := WineData{"name": "Opus One", "producer": "Opus One Winery"}

	merged := MergeWineData(existing, incoming)
	if merged["name"] != "Opus One" || merged["producer"] != "Opus One Winery" {
		t.Errorf("non-empty values should overwrite: %v", merged)
	}
}

func TestMergeWineData_DoesNotMutateInputs(t *testing.T) {
	existing := WineData{"name": "Opus One"}
	incoming := WineData{"region": "Napa Valley"}

	MergeWineData(existing, incoming)

	if len(existing) != 1 || len(incoming) != 1 {
		t.Error("inputs were mutated")
	}
}

func TestConfidenceOf(t *testing.T) {
	if got := ConfidenceOf(WineData{"confidence": 0.95}); got != 0.95 {
		t.Errorf("expected 0.95, got %v", got)
	}
	if got := ConfidenceOf(WineData{}); got != 0.8 {
		t.Errorf("expected default 0.8, got %v", got)
	}
	if got := ConfidenceOf(WineData{"confidence": "high"}); got != 0.8 {
		t.Errorf("expected default for non-numeric, got %v", got)
	}
}

func TestMergeConfidence_Monotonic(t *testing.T) {
	existing := 0.6
	if got := MergeConfidence(&existing, 0.4); got != 0.6 {
		t.Errorf("confidence regressed: got %v, want 0.6", got)
	}
	if got := MergeConfidence(&existing, 0.85); got != 0.85 {
		t.Errorf("higher confidence not adopted: got %v", got)
	}
	if got := MergeConfidence(nil, 0.3); got != 0.3 {
		t.Errorf("nil existing should take incoming: got %v", got)
	}
}
