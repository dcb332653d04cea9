package ai

import (
	"context"
	"log"
	"os"
	"strings"
)

// VisionProvider generates text from an image plus a prompt.
type VisionProvider interface {
	GenerateContent(ctx context.Context, image []byte, prompt string, maxTokens int) (string, error)
}

// TextProvider generates text from a text-only prompt.
type TextProvider interface {
	GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ProviderConfig selects a backend and model for one capability.
type ProviderConfig struct {
	Provider string
	Model    string
}

// VisionConfigFromEnv reads the scan (vision) provider configuration.
// SCAN_AI_PROVIDER / SCAN_AI_MODEL override the global AI_PROVIDER defaults.
func VisionConfigFromEnv() ProviderConfig {
	return configFromEnv("SCAN_AI_PROVIDER", "SCAN_AI_MODEL")
}

// TextConfigFromEnv reads the recommendation (text) provider configuration.
func TextConfigFromEnv() ProviderConfig {
	return configFromEnv("RECOMMENDATION_AI_PROVIDER", "RECOMMENDATION_AI_MODEL")
}

func configFromEnv(providerKey, modelKey string) ProviderConfig {
	provider := os.Getenv(providerKey)
	if provider == "" {
		provider = os.Getenv("AI_PROVIDER")
	}
	if provider == "" {
		provider = "gemini"
	}

	model := os.Getenv(modelKey)
	if model == "" {
		model = defaultModel(provider)
	}

	return ProviderConfig{Provider: strings.ToLower(provider), Model: model}
}

func defaultModel(provider string) string {
	switch strings.ToLower(provider) {
	case "anthropic":
		return "claude-sonnet-4-5-20250929"
	default:
		return "gemini-2.5-flash"
	}
}

// NewVisionProvider builds the vision adapter for the configured backend.
// Returns nil when credentials are missing or the provider is unknown; the
// caller treats nil as degraded mode, not an error.
func NewVisionProvider(cfg ProviderConfig) VisionProvider {
	switch cfg.Provider {
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			return nil
		}
		return NewGeminiClient(key, cfg.Model)
	case "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil
		}
		return NewAnthropicClient(key, cfg.Model)
	}
	log.Printf("AI_PROVIDER_UNKNOWN vision provider=%s", cfg.Provider)
	return nil
}

// NewTextProvider builds the text adapter for the configured backend.
// Returns nil when credentials are missing or the provider is unknown.
func NewTextProvider(cfg ProviderConfig) TextProvider {
	switch cfg.Provider {
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			return nil
		}
		return NewGeminiClient(key, cfg.Model)
	case "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil
		}
		return NewAnthropicClient(key, cfg.Model)
	}
	log.Printf("AI_PROVIDER_UNKNOWN text provider=%s", cfg.Provider)
	return nil
}
