package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Service runs AI analysis for wine scanning and recommendations. A nil
// provider means that capability is unconfigured and the service degrades
// to mock/empty results instead of failing.
type Service struct {
	vision       VisionProvider
	text         TextProvider
	visionConfig ProviderConfig
	textConfig   ProviderConfig
	promptConfig PromptConfig
}

func NewService(visionCfg, textCfg ProviderConfig) *Service {
	s := &Service{
		vision:       NewVisionProvider(visionCfg),
		text:         NewTextProvider(textCfg),
		visionConfig: visionCfg,
		textConfig:   textCfg,
		promptConfig: GetPromptConfig(visionCfg.Model),
	}

	log.Printf(
		"AI_SERVICE_INIT scan=%s/%s tier=%s recommendation=%s/%s configured_vision=%t configured_text=%t",
		visionCfg.Provider, visionCfg.Model, ResolveModelTier(visionCfg.Model),
		textCfg.Provider, textCfg.Model,
		s.vision != nil, s.text != nil,
	)

	return s
}

// NewServiceWithProviders injects providers directly. Used by tests.
func NewServiceWithProviders(vision VisionProvider, text TextProvider, visionCfg, textCfg ProviderConfig) *Service {
	return &Service{
		vision:       vision,
		text:         text,
		visionConfig: visionCfg,
		textConfig:   textCfg,
		promptConfig: GetPromptConfig(visionCfg.Model),
	}
}

// VisionConfigured reports whether a real vision provider is available.
func (s *Service) VisionConfigured() bool {
	return s.vision != nil
}

// ScanModelInfo returns the configured scan provider, model, and tier.
func (s *Service) ScanModelInfo() map[string]string {
	provider := s.visionConfig.Provider
	if s.vision == nil {
		provider = "mock"
	}
	return map[string]string{
		"provider": provider,
		"model":    s.visionConfig.Model,
		"tier":     string(ResolveModelTier(s.visionConfig.Model)),
	}
}

// RecommendationModelInfo returns the configured recommendation provider
// and model.
func (s *Service) RecommendationModelInfo() map[string]string {
	provider := s.textConfig.Provider
	if s.text == nil {
		provider = "mock"
	}
	return map[string]string{
		"provider": provider,
		"model":    s.textConfig.Model,
	}
}

// AnalyzeWineLabel extracts structured wine data from a single label image.
//
// Returns nil in two cases the orchestrator treats differently from each
// other only via logs: no provider configured, or the provider call failed.
// A response that arrives but cannot be parsed yields a low-confidence
// placeholder so the scan stays observable and refinable.
func (s *Service) AnalyzeWineLabel(ctx context.Context, image []byte) map[string]any {
	if s.vision == nil {
		log.Println("AI_SCAN_SKIPPED vision provider not configured")
		return nil
	}

	cfg := s.promptConfig
	text, err := s.vision.GenerateContent(ctx, image, cfg.SinglePrompt, cfg.SingleMaxTokens)
	if err != nil {
		log.Printf(
			"AI_SCAN_FAILED model=%s tier=%s err=%v",
			s.visionConfig.Model, ResolveModelTier(s.visionConfig.Model), err,
		)
		return nil
	}

	parsed := ExtractObject(text)
	if parsed != nil {
		return parsed
	}

	log.Printf(
		"AI_SCAN_PARSE_FAILED model=%s tier=%s response_length=%d",
		s.visionConfig.Model, ResolveModelTier(s.visionConfig.Model), len(text),
	)
	return map[string]any{
		"name":       "Unknown",
		"confidence": 0.1,
	}
}

// AnalyzeBatchWineLabels extracts one entry per bottle detected in an image
// containing multiple bottles. Always returns a slice; empty on any failure.
func (s *Service) AnalyzeBatchWineLabels(ctx context.Context, image []byte) []map[string]any {
	if s.vision == nil {
		log.Println("AI_BATCH_SKIPPED vision provider not configured")
		return []map[string]any{}
	}

	cfg := s.promptConfig
	text, err := s.vision.GenerateContent(ctx, image, cfg.BatchPrompt, cfg.BatchMaxTokens)
	if err != nil {
		log.Printf(
			"AI_BATCH_FAILED model=%s tier=%s err=%v",
			s.visionConfig.Model, ResolveModelTier(s.visionConfig.Model), err,
		)
		return []map[string]any{}
	}

	return ExtractArray(text)
}

// PairingRecommendations asks the text model to rank the user's wines for a
// food or occasion query. Falls back to mock recommendations when no text
// provider is configured or the response is unusable.
func (s *Service) PairingRecommendations(
	ctx context.Context,
	query string,
	wines []map[string]any,
) map[string]any {

	if s.text == nil {
		return MockRecommendations(wines)
	}

	winesJSON, err := json.Marshal(wines)
	if err != nil {
		return MockRecommendations(wines)
	}

	prompt := fmt.Sprintf(`You are a sommelier. A user wants wine recommendations.

User's request: %q

Available wines in their collection:
%s

Recommend the best matching wines from their collection. Return JSON:
{
  "recommendations": [
    {
      "wine_id": "uuid",
      "rank": 1,
      "match_score": 0.95,
      "reason": "Why this wine pairs well",
      "pairing_tips": "Serving suggestions",
      "drinking_urgency": "optimal"
    }
  ],
  "general_advice": "General pairing advice for the user's request"
}

"drinking_urgency": one of drink_now, drink_soon, optimal, can_wait.

Consider:
1. Food pairing compatibility
2. Drinking window (prioritize wines that should be drunk soon)
3. Wine characteristics matching the occasion

Return only valid JSON.`, query, winesJSON)

	text, err := s.text.GenerateText(ctx, prompt, 2000)
	if err != nil {
		log.Printf("AI_RECOMMEND_FAILED model=%s err=%v", s.textConfig.Model, err)
		return map[string]any{"recommendations": []any{}, "general_advice": nil}
	}

	parsed := ExtractObject(text)
	if parsed == nil {
		log.Printf("AI_RECOMMEND_PARSE_FAILED model=%s", s.textConfig.Model)
		return map[string]any{"recommendations": []any{}, "general_advice": nil}
	}

	return parsed
}
