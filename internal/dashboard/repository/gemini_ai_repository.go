package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiAIRepository is an implementation of AIRepository that uses the Google Gemini API.
type geminiAIRepository struct {
	cfg            config.Gemini
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) AIRepository {
	maxRequestPerMinute := cfg.AI.Gemini.MaxRequestPerMinute
	if maxRequestPerMinute <= 0 {
		maxRequestPerMinute = 15
	}
	secondsPerRequest := time.Minute / time.Duration(maxRequestPerMinute)

	return &geminiAIRepository{
		cfg:            cfg.AI.Gemini,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		genAiClient:    genAiClient,
	}
}

func (r *geminiAIRepository) GenerateBullBear(ctx context.Context, ticker string) (string, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	prompt := BuildBullBearPrompt(ticker)
	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Model, genai.Text(prompt), nil)
	if err != nil {
		r.logger.WarnContext(ctx, "Gemini request failed", logger.StringField("model", r.cfg.Model), logger.ErrorField(err))
		return "", classifyGeminiError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: no content found in Gemini response", ErrMalformedResponse)
	}

	if resp.UsageMetadata != nil {
		r.logger.DebugContext(ctx, "Gemini narrative generated",
			logger.StringField("ticker", ticker),
			logger.IntField("total_tokens", int(resp.UsageMetadata.TotalTokenCount)),
		)
	}

	return text, nil
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrProviderRejected, apiErr.Message)
		case http.StatusBadRequest:
			if strings.Contains(strings.ToLower(apiErr.Message), "api key") {
				return fmt.Errorf("%w: %s", ErrProviderRejected, apiErr.Message)
			}
		}
		return fmt.Errorf("gemini returned %d: %s", apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("failed to generate content: %w", err)
}
