package ai

import (
	"context"
	"errors"
	"testing"
)

type fakeVision struct {
	response string
	err      error
}

func (f *fakeVision) GenerateContent(_ context.Context, _ []byte, _ string, _ int) (string, error) {
	return f.response, f.err
}

type fakeText struct {
	response string
	err      error
}

func (f *fakeText) GenerateText(_ context.Context, _ string, _ int) (string, error) {
	return f.response, f.err
}

var testCfg = ProviderConfig{Provider: "gemini", Model: "gemini-2.5-flash"}

func TestAnalyzeWineLabel_ParsesResponse(t *testing.T) {
	vision := &fakeVision{response: `Sure! {"name":"Opus One","vintage":2018,"confidence":0.92}`}
	svc := NewServiceWithProviders(vision, nil, testCfg, testCfg)

	got := svc.AnalyzeWineLabel(context.Background(), []byte("img"))
	if got == nil {
		t.Fatal("expected parsed data")
	}
	if got["name"] != "Opus One" {
		t.Errorf("unexpected name: %v", got["name"])
	}
}

func TestAnalyzeWineLabel_ProviderErrorReturnsNil(t *testing.T) {
	vision := &fakeVision{err: errors.New("rate limited")}
	svc := NewServiceWithProviders(vision, nil, testCfg, testCfg)

	if got := svc.AnalyzeWineLabel(context.Background(), []byte("img")); got != nil {
		t.Errorf("expected nil on provider failure, got %v", got)
	}
}

func TestAnalyzeWineLabel_UnparseableYieldsPlaceholder(t *testing.T) {
	vision := &fakeVision{response: "I cannot read this label, sorry."}
	svc := NewServiceWithProviders(vision, nil, testCfg, testCfg)

	got := svc.AnalyzeWineLabel(context.Background(), []byte("img"))
	if got == nil {
		t.Fatal("expected placeholder, got nil")
	}
	if got["name"] != "Unknown" || got["confidence"] != 0.1 {
		t.Errorf("unexpected placeholder: %v", got)
	}
}

func TestAnalyzeWineLabel_Unconfigured(t *testing.T) {
	svc := NewServiceWithProviders(nil, nil, testCfg, testCfg)

	if svc.VisionConfigured() {
		t.Error("nil provider should report unconfigured")
	}
	if got := svc.AnalyzeWineLabel(context.Background(), []byte("img")); got != nil {
		t.Errorf("expected nil without a provider, got %v", got)
	}
}

func TestAnalyzeBatchWineLabels_AlwaysReturnsSlice(t *testing.T) {
	unconfigured := NewServiceWithProviders(nil, nil, testCfg, testCfg)
	if got := unconfigured.AnalyzeBatchWineLabels(context.Background(), []byte("img")); got == nil {
		t.Error("expected empty slice without a provider, got nil")
	}

	failing := NewServiceWithProviders(&fakeVision{err: errors.New("timeout")}, nil, testCfg, testCfg)
	if got := failing.AnalyzeBatchWineLabels(context.Background(), []byte("img")); got == nil || len(got) != 0 {
		t.Errorf("expected empty slice on failure, got %v", got)
	}

	ok := NewServiceWithProviders(
		&fakeVision{response: `[{"status":"success","name":"Opus One"}]`},
		nil, testCfg, testCfg,
	)
	got := ok.AnalyzeBatchWineLabels(context.Background(), []byte("img"))
	if len(got) != 1 || got[0]["name"] != "Opus One" {
		t.Errorf("unexpected batch result: %v", got)
	}
}

func TestScanModelInfo_ReportsMockWhenUnconfigured(t *testing.T) {
	svc := NewServiceWithProviders(nil, nil, testCfg, testCfg)

	info := svc.ScanModelInfo()
	if info["provider"] != "mock" {
		t.Errorf("provider = %s, want mock", info["provider"])
	}
	if info["tier"] != string(TierStandard) {
		t.Errorf("tier = %s, want standard", info["tier"])
	}

	configured := NewServiceWithProviders(&fakeVision{}, nil, testCfg, testCfg)
	if info := configured.ScanModelInfo(); info["provider"] != "gemini" {
		t.Errorf("provider = %s, want gemini", info["provider"])
	}
}

func TestPairingRecommendations(t *testing.T) {
	wines := []map[string]any{{"id": "w1", "name": "Opus One"}}

	// Without a text provider the mock fallback is used.
	degraded := NewServiceWithProviders(nil, nil, testCfg, testCfg)
	resp := degraded.PairingRecommendations(context.Background(), "steak", wines)
	recs, ok := resp["recommendations"].([]any)
	if !ok || len(recs) != 1 {
		t.Fatalf("unexpected mock recommendations: %v", resp)
	}

	// A parseable model response passes through.
	text := &fakeText{response: `{"recommendations":[{"wine_id":"w1","rank":1}],"general_advice":"decant"}`}
	svc := NewServiceWithProviders(nil, text, testCfg, testCfg)
	resp = svc.PairingRecommendations(context.Background(), "steak", wines)
	if resp["general_advice"] != "decant" {
		t.Errorf("unexpected response: %v", resp)
	}

	// Provider failure degrades to an empty result, not an error.
	failing := NewServiceWithProviders(nil, &fakeText{err: errors.New("timeout")}, testCfg, testCfg)
	resp = failing.PairingRecommendations(context.Background(), "steak", wines)
	if recs, ok := resp["recommendations"].([]any); !ok || len(recs) != 0 {
		t.Errorf("expected empty recommendations on failure: %v", resp)
	}
}

func TestMockWineDataIsFlagged(t *testing.T) {
	data := MockWineData()
	if data["mock"] != true {
		t.Error("mock data must carry the mock flag")
	}
	if name, _ := data["name"].(string); name == "" {
		t.Error("mock data must carry a wine name")
	}
}
