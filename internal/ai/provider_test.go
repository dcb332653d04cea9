package ai

import "testing"

func TestVisionConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("SCAN_AI_PROVIDER", "anthropic")
	t.Setenv("SCAN_AI_MODEL", "")

	cfg := VisionConfigFromEnv()
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %s, want anthropic", cfg.Provider)
	}
	if cfg.Model != "claude-sonnet-4-5-20250929" {
		t.Errorf("unexpected default anthropic model: %s", cfg.Model)
	}
}

func TestTextConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("RECOMMENDATION_AI_PROVIDER", "")
	t.Setenv("RECOMMENDATION_AI_MODEL", "")

	cfg := TextConfigFromEnv()
	if cfg.Provider != "gemini" || cfg.Model != "gemini-2.5-flash" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestNewVisionProvider_NilWithoutCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	if p := NewVisionProvider(ProviderConfig{Provider: "gemini", Model: "gemini-2.5-flash"}); p != nil {
		t.Error("expected nil provider without GEMINI_API_KEY")
	}
	if p := NewVisionProvider(ProviderConfig{Provider: "anthropic", Model: "claude-sonnet-4-5-20250929"}); p != nil {
		t.Error("expected nil provider without ANTHROPIC_API_KEY")
	}
	if p := NewVisionProvider(ProviderConfig{Provider: "openai"}); p != nil {
		t.Error("expected nil provider for unknown backend")
	}
}
