package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/pkg/logger"
)

type openaiAIRepository struct {
	cfg    config.OpenAI
	client *providerClient
	logger *logger.Logger
}

// NewOpenAIRepository creates an AIRepository over the chat completions API.
func NewOpenAIRepository(cfg *config.Config, log *logger.Logger) AIRepository {
	c := cfg.AI.OpenAI
	return &openaiAIRepository{
		cfg:    c,
		client: newProviderClient("openai", c.Timeout, c.MaxRequestPerMinute, log),
		logger: log,
	}
}

func (r *openaiAIRepository) GenerateBullBear(ctx context.Context, ticker string) (string, error) {
	prompt := BuildBullBearPrompt(ticker)

	resp, err := r.sendRequest(ctx, prompt)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: no content found in OpenAI response", ErrMalformedResponse)
	}

	r.logger.DebugContext(ctx, "OpenAI narrative generated",
		logger.StringField("ticker", ticker),
		logger.IntField("total_tokens", resp.Usage.TotalTokens),
	)

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (r *openaiAIRepository) sendRequest(ctx context.Context, prompt string) (*dto.OpenAIResponse, error) {
	payload := dto.OpenAIRequest{
		Model: r.cfg.Model,
		Messages: []dto.Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	body, err := r.client.sendRequest(ctx, "POST", r.cfg.BaseURL, jsonPayload, map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", r.cfg.APIKey),
	})
	if err != nil {
		return nil, err
	}

	var openaiResp dto.OpenAIResponse
	if err := json.Unmarshal(body, &openaiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response body: %v", ErrMalformedResponse, err)
	}
	if openaiResp.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrProviderRejected, openaiResp.Error.Message)
	}

	return &openaiResp, nil
}
