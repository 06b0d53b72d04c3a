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

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"
)

type claudeAIRepository struct {
	cfg            config.Claude
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	client         anthropic.Client
}

// NewClaudeAIRepository creates an AIRepository over the Anthropic Messages API.
func NewClaudeAIRepository(cfg *config.Config, log *logger.Logger) AIRepository {
	c := cfg.AI.Claude
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	maxRequestPerMinute := c.MaxRequestPerMinute
	if maxRequestPerMinute <= 0 {
		maxRequestPerMinute = 20
	}

	opts := []option.RequestOption{
		option.WithAPIKey(c.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(0),
	}
	if c.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.BaseURL))
	}

	return &claudeAIRepository{
		cfg:            c,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxRequestPerMinute)), 1),
		client:         anthropic.NewClient(opts...),
	}
}

func (r *claudeAIRepository) GenerateBullBear(ctx context.Context, ticker string) (string, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	maxTokens := int64(r.cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	msg, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(r.cfg.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildBullBearPrompt(ticker))),
		},
	})
	if err != nil {
		r.logger.WarnContext(ctx, "Claude request failed", logger.StringField("model", r.cfg.Model), logger.ErrorField(err))
		return "", classifyClaudeError(err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: no text content in Claude response", ErrMalformedResponse)
	}

	r.logger.DebugContext(ctx, "Claude narrative generated",
		logger.StringField("ticker", ticker),
		logger.IntField("output_tokens", int(msg.Usage.OutputTokens)),
	)

	return text, nil
}

func classifyClaudeError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
			return fmt.Errorf("%w: anthropic returned %d", ErrProviderRejected, apiErr.StatusCode)
		}
		return fmt.Errorf("anthropic returned %d: %w", apiErr.StatusCode, err)
	}
	return fmt.Errorf("failed to create message: %w", err)
}
