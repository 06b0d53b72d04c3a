package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig points every provider at baseURL with a generous rate limit.
func testConfig(baseURL string) *config.Config {
	p := config.Provider{BaseURL: baseURL, APIKey: "secret", Timeout: 2 * time.Second, MaxRequestPerMinute: 6000}
	return &config.Config{
		Providers: config.Providers{
			FMP:     p,
			IEX:     p,
			Finnhub: p,
			YahooFinance: config.YahooFinance{
				Provider:       p,
				SummaryBaseURL: baseURL,
				RSSBaseURL:     baseURL,
			},
		},
		AI: config.AI{
			Provider: "openai",
			OpenAI: config.OpenAI{
				BaseURL:             baseURL + "/v1/chat/completions",
				APIKey:              "secret",
				Model:               "gpt-4",
				Timeout:             2 * time.Second,
				MaxRequestPerMinute: 6000,
			},
			Gemini: config.Gemini{APIKey: "secret", Model: "gemini-2.0-flash", MaxRequestPerMinute: 6000},
			Claude: config.Claude{BaseURL: baseURL, APIKey: "secret", Model: "claude-sonnet-4-20250514", MaxTokens: 256, Timeout: 2 * time.Second, MaxRequestPerMinute: 6000},
		},
	}
}

func TestSendRequestClassifiesStatusCodes(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrProviderRejected},
		{http.StatusForbidden, ErrProviderRejected},
		{http.StatusTooManyRequests, ErrProviderRejected},
		{http.StatusNotFound, ErrNotFound},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
		}))

		c := newProviderClient("test", time.Second, 6000, logger.NewNop())
		_, err := c.get(context.Background(), srv.URL, nil)
		srv.Close()

		require.Error(t, err)
		assert.True(t, errors.Is(err, tc.want), "status %d: %v", tc.status, err)
		assert.Contains(t, err.Error(), "nope")
	}
}

func TestSendRequestServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newProviderClient("test", time.Second, 6000, logger.NewNop())
	_, err := c.get(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrProviderRejected))
	assert.False(t, errors.Is(err, ErrMalformedResponse))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestSendRequestSetsBrowserUserAgent(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newProviderClient("test", time.Second, 6000, logger.NewNop())
	_, err := c.get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Contains(t, gotAgent, "Mozilla/5.0")
}

func TestRedactURL(t *testing.T) {
	got := redactURL("https://finnhub.io/api/v1/company-news?symbol=AAPL&token=abc")
	assert.Contains(t, got, "token=REDACTED")
	assert.Contains(t, got, "symbol=AAPL")
	assert.NotContains(t, got, "abc")
}

func TestBuildBullBearPrompt(t *testing.T) {
	assert.Equal(t,
		"What are the main bull and bear case drivers for AAPL stock over the next 12 months?",
		BuildBullBearPrompt(" AAPL "),
	)
}

func TestBuildBullBearPromptKeepsQueryCase(t *testing.T) {
	assert.Equal(t,
		"What are the main bull and bear case drivers for aapl stock over the next 12 months?",
		BuildBullBearPrompt("aapl"),
	)
	assert.Contains(t, BuildBullBearPrompt(" Apple Inc. "), "drivers for Apple Inc. stock")
}
