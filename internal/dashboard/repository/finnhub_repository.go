package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/pkg/common"
	"golang-stock-dashboard/pkg/logger"

	"github.com/tidwall/gjson"
)

type finnhubRepository struct {
	cfg    config.Provider
	client *providerClient
}

// NewFinnhubRepository creates a new instance of FinnhubRepository.
func NewFinnhubRepository(cfg *config.Config, log *logger.Logger) FinnhubRepository {
	p := cfg.Providers.Finnhub
	return &finnhubRepository{
		cfg:    p,
		client: newProviderClient("finnhub", p.Timeout, p.MaxRequestPerMinute, log),
	}
}

// CompanyNews returns the articles published between from and to, both inclusive, in provider order.
func (r *finnhubRepository) CompanyNews(ctx context.Context, ticker string, from, to time.Time) ([]dto.FinnhubNews, error) {
	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("from", from.Format(common.DateLayout))
	params.Set("to", to.Format(common.DateLayout))
	params.Set("token", r.cfg.APIKey)

	body, err := r.client.get(ctx, buildURL(r.cfg.BaseURL, "/api/v1/company-news", params), nil)
	if err != nil {
		return nil, err
	}

	var news []dto.FinnhubNews
	if err := decodeList(body, &news); err != nil {
		return nil, fmt.Errorf("finnhub company news: %w", err)
	}
	return news, nil
}

// NewsSentiment returns the raw "sentiment" value, or nil when the response has none.
func (r *finnhubRepository) NewsSentiment(ctx context.Context, ticker string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("token", r.cfg.APIKey)

	body, err := r.client.get(ctx, buildURL(r.cfg.BaseURL, "/api/v1/news-sentiment", params), nil)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return nil, fmt.Errorf("%w: finnhub news sentiment: expected an object", ErrMalformedResponse)
	}
	sentiment := gjson.GetBytes(body, "sentiment")
	if !sentiment.Exists() || sentiment.Type == gjson.Null {
		return nil, nil
	}
	return json.RawMessage(sentiment.Raw), nil
}
