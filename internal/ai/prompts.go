package ai

// PromptConfig holds the prompt text and token budgets for scan requests
// against one model tier.
type PromptConfig struct {
	SinglePrompt    string
	BatchPrompt     string
	SingleMaxTokens int
	BatchMaxTokens  int
}

// GetPromptConfig returns the prompt bundle appropriate for the given model.
// Higher-capability models get richer prompts and larger budgets; lite
// models get a reduced field set to control cost and avoid budget
// exhaustion from model-internal reasoning.
func GetPromptConfig(model string) PromptConfig {
	return tierConfigs[ResolveModelTier(model)]
}

var tierConfigs = map[ModelTier]PromptConfig{
	TierPremium: {
		SinglePrompt:    premiumSinglePrompt,
		BatchPrompt:     premiumBatchPrompt,
		SingleMaxTokens: 3000,
		BatchMaxTokens:  8000,
	},
	TierStandard: {
		SinglePrompt:    standardSinglePrompt,
		BatchPrompt:     standardBatchPrompt,
		SingleMaxTokens: 2000,
		BatchMaxTokens:  5000,
	},
	TierLite: {
		SinglePrompt:    liteSinglePrompt,
		BatchPrompt:     liteBatchPrompt,
		SingleMaxTokens: 1000,
		BatchMaxTokens:  3000,
	},
}

const premiumSinglePrompt = `You are a Master Sommelier with expertise in reading wine labels from all regions worldwide.

Analyze this wine label image carefully. Read all visible text including fine print, back labels, and any certifications. Consider the label design, typography, and visual cues to identify the wine.

For multilingual labels, read text in French, Italian, Spanish, German, Portuguese, and any other language present. Translate key terms to provide accurate structured data.

Extract the following information in JSON format:
{
  "name": "Full wine name as printed on the label",
  "producer": "Winery/Producer/Domaine/Chateau name",
  "vintage": 2020,
  "grape_variety": ["Cabernet Sauvignon", "Merlot"],
  "region": "Specific sub-region (e.g., Saint-Julien, Rutherford, Barolo)",
  "country": "Country of origin",
  "appellation": "Official appellation/denomination (AOC, DOC, DOCG, AVA, etc.)",
  "abv": 13.5,
  "type": "red",
  "body": 4,
  "tannin": 4,
  "acidity": 3,
  "sweetness": 1,
  "food_pairing": ["Grilled steak", "Lamb", "Aged cheese"],
  "flavor_notes": ["Blackcurrant", "Cedar", "Tobacco"],
  "serving_temp_min": 16,
  "serving_temp_max": 18,
  "drinking_window_start": 2025,
  "drinking_window_end": 2040,
  "description": "Brief description of the wine's character and quality level",
  "confidence": 0.95
}

Field guidelines:
- "type": one of red, white, rose, sparkling, dessert, fortified
- "body/tannin/acidity/sweetness": 1-5 scale, infer from grape, region, vintage if not on label
- "confidence": 0-1, lower if the label is partially obscured, blurry, or you are guessing
- Only include fields you can determine from the label or your wine knowledge
- Return ONLY valid JSON, no additional text`

const premiumBatchPrompt = `You are a Master Sommelier analyzing an image containing multiple wine bottles.

Carefully examine the entire image. Identify every wine bottle visible, even those partially obscured, at angles, or in the background. For each bottle, read all visible label text including fine print and back labels.

For multilingual labels, read text in French, Italian, Spanish, German, Portuguese, and any other language present.

Return a compact JSON array with no extra whitespace. For each detected bottle:
[
  {
    "status": "success",
    "name": "Full wine name as printed on the label",
    "producer": "Winery/Producer name",
    "vintage": 2020,
    "grape_variety": ["Cabernet Sauvignon"],
    "region": "Specific sub-region",
    "country": "Country of origin",
    "appellation": "Official appellation if visible",
    "abv": 13.5,
    "type": "red",
    "body": 4,
    "tannin": 4,
    "acidity": 3,
    "sweetness": 1,
    "food_pairing": ["Grilled steak", "Lamb"],
    "flavor_notes": ["Blackcurrant", "Cedar"],
    "serving_temp_min": 16,
    "serving_temp_max": 18,
    "drinking_window_start": 2025,
    "drinking_window_end": 2040,
    "description": "Brief description",
    "confidence": 0.95,
    "bounding_box": {"x": 100, "y": 50, "width": 200, "height": 400}
  },
  {
    "status": "failed",
    "error": "Label too obscured to read",
    "confidence": 0.1,
    "bounding_box": {"x": 350, "y": 50, "width": 200, "height": 400}
  }
]

Field guidelines:
- "type": one of red, white, rose, sparkling, dessert, fortified
- "body/tannin/acidity/sweetness": 1-5 scale, infer from grape, region, vintage
- "confidence": 0-1 per bottle. Set lower for partially visible or guessed information
- "bounding_box": approximate pixel coordinates of each bottle in the image
- If a label is unreadable, include it with status "failed" and an error description. Never omit a detected bottle.
- Return ONLY a valid JSON array, no additional text`

const standardSinglePrompt = `Analyze this wine label image and extract the following information in JSON format:
{
  "name": "Full wine name",
  "producer": "Winery/Producer name",
  "vintage": 2020,
  "grape_variety": ["Cabernet Sauvignon", "Merlot"],
  "region": "Specific region (e.g., Margaux, Napa Valley)",
  "country": "Country of origin",
  "appellation": "Official appellation if visible",
  "abv": 13.5,
  "type": "red",
  "body": 4,
  "tannin": 4,
  "acidity": 3,
  "sweetness": 1,
  "food_pairing": ["Grilled steak", "Lamb", "Aged cheese"],
  "flavor_notes": ["Blackcurrant", "Cedar", "Tobacco"],
  "serving_temp_min": 16,
  "serving_temp_max": 18,
  "drinking_window_start": 2025,
  "drinking_window_end": 2040,
  "description": "Brief description of the wine",
  "confidence": 0.95
}

Only include fields you can determine from the label or your knowledge. Return only valid JSON.`

const standardBatchPrompt = `Analyze this image containing multiple wine bottles. For each visible wine label, extract information.

Return a compact JSON array of objects with no extra whitespace:
[
  {
    "status": "success",
    "name": "Full wine name",
    "producer": "Producer name",
    "vintage": 2020,
    "grape_variety": ["Cabernet Sauvignon"],
    "type": "red",
    "country": "Country",
    "region": "Region",
    "appellation": "Appellation if visible",
    "abv": 13.5,
    "confidence": 0.95,
    "bounding_box": {"x": 100, "y": 50, "width": 200, "height": 400}
  },
  {
    "status": "failed",
    "error": "Label obscured or unreadable",
    "bounding_box": {"x": 350, "y": 50, "width": 200, "height": 400}
  }
]

- "type": one of red, white, rose, sparkling, dessert, fortified
- Include all wines visible in the image, even partially visible ones
- Mark unreadable bottles as status "failed" instead of leaving them out
- Return only valid JSON array.`

const liteSinglePrompt = `Extract wine information from this label image as JSON:
{
  "name": "Wine name",
  "producer": "Producer",
  "vintage": 2020,
  "type": "red",
  "country": "Country",
  "region": "Region",
  "confidence": 0.9
}

"type": one of red, white, rose, sparkling, dessert, fortified.
Only include fields visible on the label. Return only valid JSON.`

const liteBatchPrompt = `List all wine bottles visible in this image as a compact JSON array:
[
  {
    "status": "success",
    "name": "Wine name",
    "producer": "Producer",
    "vintage": 2020,
    "type": "red",
    "country": "Country",
    "region": "Region",
    "confidence": 0.9,
    "bounding_box": {"x": 100, "y": 50, "width": 200, "height": 400}
  },
  {
    "status": "failed",
    "error": "Unreadable",
    "bounding_box": {"x": 350, "y": 50, "width": 200, "height": 400}
  }
]

"type": one of red, white, rose, sparkling, dessert, fortified.
Mark unreadable bottles as status "failed". Return only valid JSON array.`
