package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/pkg/logger"

	"github.com/tidwall/gjson"
)

type fmpRepository struct {
	cfg    config.Provider
	client *providerClient
}

// NewFMPRepository creates a new instance of FMPRepository.
func NewFMPRepository(cfg *config.Config, log *logger.Logger) FMPRepository {
	p := cfg.Providers.FMP
	return &fmpRepository{
		cfg:    p,
		client: newProviderClient("fmp", p.Timeout, p.MaxRequestPerMinute, log),
	}
}

// SearchSymbol runs the fuzzy name/ticker search with a result limit of 1.
func (r *fmpRepository) SearchSymbol(ctx context.Context, query string) ([]dto.FMPSearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", "1")
	params.Set("apikey", r.cfg.APIKey)

	body, err := r.client.get(ctx, buildURL(r.cfg.BaseURL, "/api/v3/search", params), nil)
	if err != nil {
		return nil, err
	}

	var results []dto.FMPSearchResult
	if err := decodeList(body, &results); err != nil {
		return nil, fmt.Errorf("fmp search: %w", err)
	}
	return results, nil
}

// IncomeStatements returns at most limit annual statements in provider order.
func (r *fmpRepository) IncomeStatements(ctx context.Context, ticker string, limit int) ([]dto.FMPIncomeStatement, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("apikey", r.cfg.APIKey)

	body, err := r.client.get(ctx, buildURL(r.cfg.BaseURL, "/api/v3/income-statement/"+url.PathEscape(ticker), params), nil)
	if err != nil {
		return nil, err
	}

	var rows []dto.FMPIncomeStatement
	if err := decodeList(body, &rows); err != nil {
		return nil, fmt.Errorf("fmp income statement: %w", err)
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// decodeList accepts only a JSON array. FMP reports errors as a 200 with an object body.
func decodeList(body []byte, dest interface{}) error {
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsArray() {
		if msg := providerMessage(body); msg != "" {
			return fmt.Errorf("%w: %s", ErrMalformedResponse, msg)
		}
		return fmt.Errorf("%w: expected a list", ErrMalformedResponse)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
