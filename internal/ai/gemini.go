package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GeminiClient calls the Gemini generateContent API. It implements both the
// vision and text capabilities.
type GeminiClient struct {
	apiKey string
	model  string
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{apiKey: apiKey, model: model}
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func (g *GeminiClient) GenerateContent(
	ctx context.Context,
	image []byte,
	prompt string,
	maxTokens int,
) (string, error) {

	parts := []map[string]any{
		{"text": prompt},
		{
			"inline_data": map[string]any{
				"mime_type": "image/jpeg",
				"data":      base64.StdEncoding.EncodeToString(image),
			},
		},
	}

	return g.generate(ctx, parts, maxTokens)
}

func (g *GeminiClient) GenerateText(
	ctx context.Context,
	prompt string,
	maxTokens int,
) (string, error) {

	parts := []map[string]any{
		{"text": prompt},
	}

	return g.generate(ctx, parts, maxTokens)
}

func (g *GeminiClient) generate(
	ctx context.Context,
	parts []map[string]any,
	maxTokens int,
) (string, error) {

	if g.apiKey == "" {
		return "", errors.New("missing GEMINI_API_KEY")
	}
	if g.model == "" {
		return "", errors.New("missing gemini model")
	}

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		g.model,
		g.apiKey,
	)

	// Gemini 2.5+ models have "thinking" enabled by default and thinking
	// tokens consume the maxOutputTokens budget, silently truncating the
	// visible answer. A zero thinking budget keeps the full budget for the
	// response; models without thinking ignore the field.
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": parts},
		},
		"generationConfig": map[string]any{
			"temperature":     0.2,
			"maxOutputTokens": maxTokens,
			"thinkingConfig": map[string]any{
				"thinkingBudget": 0,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api error: %s", string(raw))
	}

	var result geminiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty gemini response")
	}

	candidate := result.Candidates[0]
	if candidate.FinishReason != "" && candidate.FinishReason != "STOP" {
		logTruncation("gemini", g.model, candidate.FinishReason, maxTokens)
	}

	return candidate.Content.Parts[0].Text, nil
}
