package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const anthropicMessagesURL = "https://api.anthropic.com/v1/messages"

// AnthropicClient calls the Anthropic Messages API. It implements both the
// vision and text capabilities. Thinking is left off, so the full max_tokens
// budget goes to the visible answer.
type AnthropicClient struct {
	apiKey string
	model  string
}

func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	return &AnthropicClient{apiKey: apiKey, model: model}
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func (a *AnthropicClient) GenerateContent(
	ctx context.Context,
	image []byte,
	prompt string,
	maxTokens int,
) (string, error) {

	content := []map[string]any{
		{
			"type": "image",
			"source": map[string]any{
				"type":       "base64",
				"media_type": "image/jpeg",
				"data":       base64.StdEncoding.EncodeToString(image),
			},
		},
		{
			"type": "text",
			"text": prompt,
		},
	}

	return a.generate(ctx, content, maxTokens)
}

func (a *AnthropicClient) GenerateText(
	ctx context.Context,
	prompt string,
	maxTokens int,
) (string, error) {

	content := []map[string]any{
		{
			"type": "text",
			"text": prompt,
		},
	}

	return a.generate(ctx, content, maxTokens)
}

func (a *AnthropicClient) generate(
	ctx context.Context,
	content []map[string]any,
	maxTokens int,
) (string, error) {

	if a.apiKey == "" {
		return "", errors.New("missing ANTHROPIC_API_KEY")
	}
	if a.model == "" {
		return "", errors.New("missing anthropic model")
	}

	payload := map[string]any{
		"model":      a.model,
		"max_tokens": maxTokens,
		"messages": []map[string]any{
			{
				"role":    "user",
				"content": content,
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
		anthropicMessagesURL,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

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
		return "", fmt.Errorf("anthropic api error: %s", string(raw))
	}

	var result anthropicResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}

	if len(result.Content) == 0 {
		return "", errors.New("empty anthropic response")
	}

	if result.StopReason != "" && result.StopReason != "end_turn" {
		logTruncation("anthropic", a.model, result.StopReason, maxTokens)
	}

	return result.Content[0].Text, nil
}

// logTruncation flags a non-normal finish so callers can distinguish
// truncated low-confidence results from clean ones when tuning budgets.
func logTruncation(provider, model, reason string, maxTokens int) {
	log.Printf(
		"AI_RESPONSE_TRUNCATED provider=%s model=%s tier=%s finish_reason=%s max_tokens=%d",
		provider, model, ResolveModelTier(model), reason, maxTokens,
	)
}
