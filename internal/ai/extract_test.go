package ai

import "testing"

func TestExtractObject(t *testing.T) {
	if got := ExtractObject("no json here"); got != nil {
		t.Errorf("expected nil for text without JSON, got %v", got)
	}

	got := ExtractObject(`prefix {"name":"x"} suffix`)
	if got == nil {
		t.Fatal("expected object, got nil")
	}
	if got["name"] != "x" {
		t.Errorf("expected name=x, got %v", got["name"])
	}

	fenced := ExtractObject("```json\n{\"name\":\"Margaux\",\"vintage\":2015}\n```")
	if fenced == nil || fenced["name"] != "Margaux" {
		t.Errorf("expected object from fenced JSON, got %v", fenced)
	}

	if got := ExtractObject("{not valid json}"); got != nil {
		t.Errorf("expected nil for malformed JSON, got %v", got)
	}
}

func TestExtractArray(t *testing.T) {
	if got := ExtractArray("[]"); got == nil || len(got) != 0 {
		t.Errorf("expected empty array, got %v", got)
	}

	if got := ExtractArray("not json"); got == nil || len(got) != 0 {
		t.Errorf("expected empty array for non-JSON, got %v", got)
	}

	got := ExtractArray(`Here you go: [{"status":"success","name":"a"},{"status":"failed"}] done`)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0]["name"] != "a" {
		t.Errorf("expected first item name=a, got %v", got[0]["name"])
	}

	if got := ExtractArray("[{bad]"); len(got) != 0 {
		t.Errorf("expected empty array for malformed JSON, got %v", got)
	}
}
