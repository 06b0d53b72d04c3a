package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"time"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/pkg/common"
	"golang-stock-dashboard/pkg/logger"

	"github.com/guregu/null/v6"
	"github.com/tidwall/gjson"
)

const quoteSummaryModules = "price,summaryProfile,summaryDetail"

type yahooFinanceRepository struct {
	cfg    config.YahooFinance
	client *providerClient
}

// NewYahooFinanceRepository creates a new instance of YahooFinanceRepository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	p := cfg.Providers.YahooFinance
	return &yahooFinanceRepository{
		cfg:    p,
		client: newProviderClient("yahoo_finance", p.Timeout, p.MaxRequestPerMinute, log),
	}
}

// DailyHistory returns daily closes for the range, oldest first. Bars without a close are skipped.
func (r *yahooFinanceRepository) DailyHistory(ctx context.Context, ticker, rangeParam string) ([]dto.YahooBar, error) {
	params := url.Values{}
	params.Set("range", rangeParam)
	params.Set("interval", "1d")

	body, err := r.client.get(ctx, buildURL(r.cfg.BaseURL, "/v8/finance/chart/"+url.PathEscape(ticker), params), nil)
	if err != nil {
		return nil, err
	}

	var resp dto.YahooChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: yahoo chart: %v", ErrMalformedResponse, err)
	}
	if resp.Chart.Error != nil {
		if resp.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, resp.Chart.Error.Description)
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, nil
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil, nil
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return nil, fmt.Errorf("%w: yahoo chart: close series does not match timestamps", ErrMalformedResponse)
	}

	var exchange *time.Location
	if name := result.Meta.ExchangeTimezoneName; name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			r.client.log.WarnContext(ctx, "Unknown exchange time zone", logger.StringField("ticker", ticker), logger.StringField("time_zone", name))
		} else {
			exchange = loc
		}
	}

	closes := result.Indicators.Quote[0].Close
	bars := make([]dto.YahooBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		bar := dto.YahooBar{Timestamp: ts, Close: *closes[i]}
		if exchange != nil {
			bar.Date = time.Unix(ts, 0).In(exchange).Format(common.DateLayout)
		}
		bars = append(bars, bar)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Timestamp < bars[j].Timestamp })

	return bars, nil
}

// QuoteSummary returns company metadata. Every field is optional.
func (r *yahooFinanceRepository) QuoteSummary(ctx context.Context, ticker string) (*dto.YahooQuoteSummary, error) {
	params := url.Values{}
	params.Set("modules", quoteSummaryModules)

	body, err := r.client.get(ctx, buildURL(r.cfg.SummaryBaseURL, "/v10/finance/quoteSummary/"+url.PathEscape(ticker), params), nil)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: yahoo quote summary: invalid json", ErrMalformedResponse)
	}
	root := gjson.GetBytes(body, "quoteSummary")
	if !root.Exists() {
		return nil, fmt.Errorf("%w: yahoo quote summary: missing quoteSummary", ErrMalformedResponse)
	}
	if desc := root.Get("error.description"); desc.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, desc.String())
	}
	result := root.Get("result.0")
	if !result.Exists() {
		return nil, fmt.Errorf("%w: yahoo quote summary: empty result", ErrNotFound)
	}

	return &dto.YahooQuoteSummary{
		LongName:         nullString(result.Get("price.longName")),
		Sector:           nullString(result.Get("summaryProfile.sector")),
		Industry:         nullString(result.Get("summaryProfile.industry")),
		CurrentPrice:     nullFloat(result.Get("price.regularMarketPrice.raw")),
		FiftyTwoWeekHigh: nullFloat(result.Get("summaryDetail.fiftyTwoWeekHigh.raw")),
		FiftyTwoWeekLow:  nullFloat(result.Get("summaryDetail.fiftyTwoWeekLow.raw")),
	}, nil
}

func nullString(res gjson.Result) null.String {
	if res.Type != gjson.String || res.String() == "" {
		return null.String{}
	}
	return null.StringFrom(res.String())
}

func nullFloat(res gjson.Result) null.Float {
	if res.Type != gjson.Number {
		return null.Float{}
	}
	return null.FloatFrom(res.Float())
}
