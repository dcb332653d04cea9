package ai

import "strings"

// ModelTier classifies an AI model's capability. The tier drives how deep
// the scan prompt goes and how large the token budget is.
type ModelTier string

const (
	TierPremium  ModelTier = "premium"
	TierStandard ModelTier = "standard"
	TierLite     ModelTier = "lite"
)

var modelTierMap = map[string]ModelTier{
	// Anthropic
	"claude-opus-4-6":            TierPremium,
	"claude-opus-4-20250514":     TierPremium,
	"claude-sonnet-4-20250514":   TierStandard,
	"claude-sonnet-4-5-20250929": TierStandard,
	"claude-haiku-4-5-20251001":  TierLite,
	// Google Gemini
	"gemini-2.5-pro":        TierPremium,
	"gemini-2.5-flash":      TierStandard,
	"gemini-2.0-flash":      TierStandard,
	"gemini-2.0-flash-lite": TierLite,
}

// ResolveModelTier maps a model identifier to its capability tier.
// Exact matches win; otherwise versioned/preview IDs fall back to prefix
// matching (e.g. "gemini-2.5-pro-preview-0115" resolves as gemini-2.5-pro).
// Unrecognized models resolve to TierStandard.
func ResolveModelTier(model string) ModelTier {
	if tier, ok := modelTierMap[model]; ok {
		return tier
	}

	// Longest prefix wins so "gemini-2.0-flash-lite-001" resolves as
	// the lite model, not the plain flash one.
	var (
		best    ModelTier
		bestLen = -1
	)
	for prefix, tier := range modelTierMap {
		if strings.HasPrefix(model, prefix) && len(prefix) > bestLen {
			best = tier
			bestLen = len(prefix)
		}
	}
	if bestLen >= 0 {
		return best
	}

	return TierStandard
}
