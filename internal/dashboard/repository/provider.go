package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang-stock-dashboard/pkg/logger"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrMalformedResponse is returned when a provider answers with a body that does not match its documented shape.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrProviderRejected is returned when a provider refuses the request (auth, quota).
	ErrProviderRejected = errors.New("provider rejected request")
	// ErrNotFound is returned when a provider reports it has nothing for the requested symbol.
	ErrNotFound = errors.New("symbol not found")
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var secretParams = []string{"apikey", "api_key", "token"}

// providerClient is the HTTP plumbing shared by the provider repositories.
type providerClient struct {
	name                string
	httpClient          *http.Client
	requestLimiter      *rate.Limiter
	maxRequestPerMinute int
	log                 *logger.Logger
}

func newProviderClient(name string, timeout time.Duration, maxRequestPerMinute int, log *logger.Logger) *providerClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxRequestPerMinute <= 0 {
		maxRequestPerMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(maxRequestPerMinute)
	return &providerClient{
		name: name,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		requestLimiter:      rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		maxRequestPerMinute: maxRequestPerMinute,
		log:                 log,
	}
}

func (c *providerClient) get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	return c.sendRequest(ctx, http.MethodGet, rawURL, nil, headers)
}

func (c *providerClient) sendRequest(ctx context.Context, method, rawURL string, payload []byte, headers map[string]string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("provider", c.name),
		zap.String("url", redactURL(rawURL)),
		zap.Int("max_request_per_minute", c.maxRequestPerMinute),
	}

	if err := c.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		c.log.WarnContext(ctx, "Failed to wait for request limit", fields...)
		return nil, fmt.Errorf("failed to wait for %s request limit: %w", c.name, err)
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		c.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, fmt.Errorf("failed to create %s request: %w", c.name, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		c.log.WarnContext(ctx, "Failed to send request", fields...)
		return nil, fmt.Errorf("failed to send request to %s: %w", c.name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		c.log.WarnContext(ctx, "Failed to read response body", fields...)
		return nil, fmt.Errorf("failed to read %s response body: %w", c.name, err)
	}

	fields = append(fields, zap.Int("status_code", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))
	if resp.StatusCode != http.StatusOK {
		c.log.WarnContext(ctx, "Received non-OK response", fields...)
		return nil, statusError(c.name, resp.StatusCode, respBody)
	}

	c.log.DebugContext(ctx, "Provider request completed", fields...)
	return respBody, nil
}

// statusError maps a non-OK status code onto the package sentinels.
func statusError(provider string, statusCode int, body []byte) error {
	msg := providerMessage(body)
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests, http.StatusPaymentRequired:
		return fmt.Errorf("%w: %s returned %d %s", ErrProviderRejected, provider, statusCode, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s returned %d %s", ErrNotFound, provider, statusCode, msg)
	}
	return fmt.Errorf("received non-OK response from %s: %d %s", provider, statusCode, msg)
}

// providerMessage extracts a human readable error from the error bodies the providers are known to send.
func providerMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"error.message", "error", "message", "Error Message", "chart.error.description", "finance.error.description"} {
		if res := gjson.GetBytes(body, path); res.Type == gjson.String && res.String() != "" {
			return res.String()
		}
	}
	return ""
}

func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func buildURL(baseURL, path string, params url.Values) string {
	if len(params) == 0 {
		return baseURL + path
	}
	return baseURL + path + "?" + params.Encode()
}
