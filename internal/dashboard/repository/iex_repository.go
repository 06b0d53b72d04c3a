package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/pkg/logger"
)

type iexRepository struct {
	cfg    config.Provider
	client *providerClient
}

// NewIEXRepository creates a new instance of IEXRepository.
func NewIEXRepository(cfg *config.Config, log *logger.Logger) IEXRepository {
	p := cfg.Providers.IEX
	return &iexRepository{
		cfg:    p,
		client: newProviderClient("iex", p.Timeout, p.MaxRequestPerMinute, log),
	}
}

// Logo returns the logo URL, or an empty string when IEX has none.
func (r *iexRepository) Logo(ctx context.Context, ticker string) (string, error) {
	params := url.Values{}
	params.Set("token", r.cfg.APIKey)

	body, err := r.client.get(ctx, buildURL(r.cfg.BaseURL, "/stable/stock/"+url.PathEscape(ticker)+"/logo", params), nil)
	if err != nil {
		return "", err
	}

	var resp dto.IEXLogoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: iex logo: %v", ErrMalformedResponse, err)
	}
	return resp.URL, nil
}
