package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/dashboard/repository"
	"golang-stock-dashboard/pkg/cache"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNetwork = errors.New("dial tcp: connection refused")

func TestResolveReturnsFirstMatch(t *testing.T) {
	f := newFixture()
	f.fmp.matches["Apple"] = "AAPL"

	assert.Equal(t, "AAPL", f.service().Resolve(context.Background(), "  Apple "))
}

func TestResolveFallsBackToInput(t *testing.T) {
	f := newFixture()
	assert.Equal(t, "ZZZNOTAREALTICKER", f.service().Resolve(context.Background(), "ZZZNOTAREALTICKER"))

	f.fmp.searchErr = errNetwork
	assert.Equal(t, "Apple", f.service().Resolve(context.Background(), "Apple"))

	f.fmp.searchErr = fmt.Errorf("%w: expected a list", repository.ErrMalformedResponse)
	assert.Equal(t, "Apple", f.service().Resolve(context.Background(), "Apple"))
}

func TestFetchProfileLogoFailureKeepsMetadata(t *testing.T) {
	f := newFixture()
	f.iex.err = errNetwork
	f.yahoo.summary = &dto.YahooQuoteSummary{
		LongName:     null.StringFrom("Apple Inc."),
		Sector:       null.StringFrom("Technology"),
		CurrentPrice: null.FloatFrom(189.84),
	}

	p := f.service().FetchProfile(context.Background(), "AAPL")
	assert.Equal(t, dto.StatusUnavailable, p.LogoStatus)
	assert.Equal(t, dto.StatusOK, p.MetadataStatus)
	assert.Equal(t, "Apple Inc.", p.Name.String)

	v := p.View()
	assert.Equal(t, "N/A", v.LogoURL)
	assert.Equal(t, "N/A", v.Industry)
	assert.Equal(t, "189.84", v.CurrentPrice)
}

func TestFetchProfileMetadataFailureKeepsLogo(t *testing.T) {
	f := newFixture()
	f.iex.logo = "https://logo/AAPL.png"
	f.yahoo.summaryErr = fmt.Errorf("%w: bad", repository.ErrMalformedResponse)

	p := f.service().FetchProfile(context.Background(), "AAPL")
	assert.Equal(t, dto.StatusOK, p.LogoStatus)
	assert.Equal(t, dto.StatusMalformed, p.MetadataStatus)
	assert.Equal(t, "https://logo/AAPL.png", p.LogoURL.String)
	assert.Equal(t, "AAPL", p.View().Name)
}

func TestFetchPriceSeriesFiveYears(t *testing.T) {
	f := newFixture()
	f.yahoo.bars = dailyBars(1258)

	s := f.service().FetchPriceSeries(context.Background(), "AAPL")
	require.Equal(t, dto.StatusOK, s.Status)
	require.Len(t, s.Data.Points, 1258)
	assert.Equal(t, "5y", s.Data.Range)

	for i := 0; i < 199; i++ {
		require.False(t, s.Data.Points[i].MA200.Valid, "row %d", i)
	}
	assert.True(t, s.Data.Points[199].MA200.Valid)
	assert.Len(t, s.Data.Charts, 4)
}

func TestFetchPriceSeriesFailures(t *testing.T) {
	f := newFixture()
	f.yahoo.barsErr = fmt.Errorf("%w: not found", repository.ErrNotFound)
	s := f.service().FetchPriceSeries(context.Background(), "ZZZ")
	assert.Equal(t, dto.StatusEmpty, s.Status)
	assert.Equal(t, MessageNoPriceHistory, s.Message)

	f.yahoo.barsErr = errNetwork
	s = f.service().FetchPriceSeries(context.Background(), "ZZZ")
	assert.Equal(t, dto.StatusUnavailable, s.Status)
	assert.Equal(t, MessageNoData, s.Message)
}

func TestFetchIncomeStatementCapsAndKeepsOrder(t *testing.T) {
	f := newFixture()
	for year := 2024; year >= 2017; year-- {
		f.fmp.statements = append(f.fmp.statements, dto.FMPIncomeStatement{
			Date:    fmt.Sprintf("%d-09-28", year),
			Revenue: decimal.NewFromInt(int64(year)),
		})
	}

	s := f.service().FetchIncomeStatement(context.Background(), "AAPL")
	require.Equal(t, dto.StatusOK, s.Status)
	require.Len(t, s.Data, 5)
	assert.Equal(t, "2024-09-28", s.Data[0].Date)
	assert.Equal(t, "2020-09-28", s.Data[4].Date)
}

func TestFetchIncomeStatementNonListNeverRaises(t *testing.T) {
	f := newFixture()
	f.fmp.stmtErr = fmt.Errorf("fmp income statement: %w", repository.ErrMalformedResponse)

	s := f.service().FetchIncomeStatement(context.Background(), "AAPL")
	assert.Equal(t, dto.StatusMalformed, s.Status)
	assert.Empty(t, s.Data)
	assert.Equal(t, MessageNoData, s.Message)
}

func TestFetchNewsWindowAndCap(t *testing.T) {
	f := newFixture()
	for i := 0; i < 8; i++ {
		f.finnhub.news = append(f.finnhub.news, dto.FinnhubNews{
			Headline: fmt.Sprintf("headline %d", i),
			URL:      fmt.Sprintf("https://example.com/%d", i),
			Datetime: fixedNow.Add(-time.Duration(i) * time.Hour).Unix(),
		})
	}

	s := f.service().FetchNews(context.Background(), "AAPL")
	require.Equal(t, dto.StatusOK, s.Status)
	require.Len(t, s.Data, 5)
	assert.Equal(t, "headline 0", s.Data[0].Headline)
	assert.Equal(t, "headline 4", s.Data[4].Headline)
	require.NotNil(t, s.Data[0].PublishedAt)

	assert.Equal(t, "2024-06-14", f.finnhub.to.Format("2006-01-02"))
	assert.Equal(t, "2023-06-15", f.finnhub.from.Format("2006-01-02"))
	assert.Equal(t, 365*24*time.Hour, f.finnhub.to.Sub(f.finnhub.from))
}

func TestFetchNewsWindowFollowsClock(t *testing.T) {
	f := newFixture()
	svc := f.service()
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC) }

	svc.FetchNews(context.Background(), "AAPL")
	assert.Equal(t, "2025-01-02", f.finnhub.to.Format("2006-01-02"))
	assert.Equal(t, "2024-01-03", f.finnhub.from.Format("2006-01-02"))
}

func TestFetchNewsEmptyIsNormal(t *testing.T) {
	f := newFixture()
	f.finnhub.news = []dto.FinnhubNews{}

	s := f.service().FetchNews(context.Background(), "AAPL")
	assert.Equal(t, dto.StatusEmpty, s.Status)
	assert.Equal(t, MessageNoNews, s.Message)
	assert.False(t, s.Degraded())
}

func TestFetchNewsRSSFallback(t *testing.T) {
	f := newFixture()
	f.cfg.News.RSSFallback = true
	inWindow := fixedNow.Add(-48 * time.Hour)
	tooOld := fixedNow.AddDate(-2, 0, 0)
	f.feed.items = []dto.NewsItem{
		{Headline: "old", URL: "https://example.com/old", Source: repository.RSSNewsSource, PublishedAt: &tooOld},
		{Headline: "fresh", URL: "https://example.com/fresh", Source: repository.RSSNewsSource, PublishedAt: &inWindow},
		{Headline: "undated", URL: "https://example.com/undated", Source: repository.RSSNewsSource},
	}

	s := f.service().FetchNews(context.Background(), "AAPL")
	require.Equal(t, dto.StatusOK, s.Status)
	require.Len(t, s.Data, 1)
	assert.Equal(t, "fresh", s.Data[0].Headline)
	assert.Equal(t, "rss", s.Data[0].Source)
}

func TestFetchSentimentPassThrough(t *testing.T) {
	f := newFixture()
	f.finnhub.sentiment = json.RawMessage(`{"bullishPercent":0.7}`)

	s := f.service().FetchSentiment(context.Background(), "AAPL")
	require.Equal(t, dto.StatusOK, s.Status)
	assert.JSONEq(t, `{"bullishPercent":0.7}`, string(s.Data))

	f.finnhub.sentiment = nil
	s = f.service().FetchSentiment(context.Background(), "AAPL")
	assert.Equal(t, dto.StatusEmpty, s.Status)
	assert.Equal(t, MessageNoSentiment, s.Message)
}

func TestGenerateBullBearWarnings(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status dto.Status
	}{
		{"quota", fmt.Errorf("%w: quota exceeded", repository.ErrProviderRejected), dto.StatusRejected},
		{"network", errNetwork, dto.StatusUnavailable},
		{"malformed", fmt.Errorf("%w: no content", repository.ErrMalformedResponse), dto.StatusMalformed},
		{"model missing", fmt.Errorf("%w: model", repository.ErrNotFound), dto.StatusUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.ai.err = tc.err

			s := f.service().GenerateBullBear(context.Background(), "AAPL")
			assert.Equal(t, tc.status, s.Status)
			assert.Equal(t, "AI Error: "+tc.err.Error(), s.Message)
			assert.Empty(t, s.Data)
		})
	}
}

func TestGenerateBullBearNarrative(t *testing.T) {
	f := newFixture()
	f.ai.text = "Bull: iPhone. Bear: regulation."

	s := f.service().GenerateBullBear(context.Background(), "AAPL")
	assert.Equal(t, dto.StatusOK, s.Status)
	assert.Equal(t, "Bull: iPhone. Bear: regulation.", s.Data)
}

func TestAggregateApple(t *testing.T) {
	f := newFixture()
	f.fmp.matches["Apple"] = "AAPL"
	f.yahoo.bars = dailyBars(1258)
	f.yahoo.summary = &dto.YahooQuoteSummary{LongName: null.StringFrom("Apple Inc.")}
	f.iex.logo = "https://logo/AAPL.png"
	f.finnhub.sentiment = json.RawMessage(`0.42`)
	f.ai.err = fmt.Errorf("%w: insufficient_quota", repository.ErrProviderRejected)

	d, err := f.service().Aggregate(context.Background(), "Apple")
	require.NoError(t, err)
	assert.Equal(t, "Apple", d.Query)
	assert.Equal(t, "AAPL", d.Ticker)
	assert.Equal(t, dto.StatusOK, d.Prices.Status)
	assert.False(t, d.Prices.Data.Points[198].MA200.Valid)
	assert.Equal(t, dto.StatusRejected, d.BullBear.Status)
	assert.Contains(t, d.BullBear.Message, "AI Error:")
	assert.Equal(t, []string{"bull_bear"}, d.DegradedSections())

	require.Len(t, f.history.records, 1)
	assert.Equal(t, "AAPL", f.history.records[0].Ticker)
	assert.Equal(t, []string{"bull_bear"}, []string(f.history.records[0].DegradedSections))
}

func TestAggregateHealthyRecordsEmptyDegradedList(t *testing.T) {
	f := newFixture()
	f.fmp.matches["Apple"] = "AAPL"
	f.fmp.statements = []dto.FMPIncomeStatement{{Date: "2023-09-30", Revenue: decimal.NewFromInt(383285000000)}}
	f.yahoo.bars = dailyBars(300)
	f.yahoo.summary = &dto.YahooQuoteSummary{LongName: null.StringFrom("Apple Inc.")}
	f.iex.logo = "https://logo/AAPL.png"
	f.finnhub.news = []dto.FinnhubNews{{Headline: "Apple beats", URL: "https://example.com/a", Datetime: fixedNow.Add(-time.Hour).Unix()}}
	f.finnhub.sentiment = json.RawMessage(`0.42`)
	f.ai.text = "Bull: services. Bear: China."

	d, err := f.service().Aggregate(context.Background(), "Apple")
	require.NoError(t, err)
	assert.Empty(t, d.DegradedSections())

	require.Len(t, f.history.records, 1)
	record := f.history.records[0]
	require.NotNil(t, record.DegradedSections)
	value, err := record.DegradedSections.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", value)
}

func TestAggregateUnknownTickerDegradesIndependently(t *testing.T) {
	f := newFixture()
	f.iex.err = fmt.Errorf("%w: iex", repository.ErrNotFound)
	f.yahoo.summaryErr = fmt.Errorf("%w: quote", repository.ErrNotFound)
	f.yahoo.barsErr = fmt.Errorf("%w: chart", repository.ErrNotFound)
	f.fmp.stmtErr = fmt.Errorf("%w: Invalid API KEY", repository.ErrMalformedResponse)
	f.finnhub.newsErr = errNetwork
	f.finnhub.sentimentErr = fmt.Errorf("%w: 401", repository.ErrProviderRejected)
	f.ai.text = "Unknown company."

	d, err := f.service().Aggregate(context.Background(), "ZZZNOTAREALTICKER")
	require.NoError(t, err)
	assert.Equal(t, "ZZZNOTAREALTICKER", d.Ticker)
	assert.Equal(t, dto.StatusEmpty, d.Profile.LogoStatus)
	assert.Equal(t, dto.StatusEmpty, d.Profile.MetadataStatus)
	assert.Equal(t, dto.StatusEmpty, d.Prices.Status)
	assert.Equal(t, dto.StatusMalformed, d.IncomeStatement.Status)
	assert.Equal(t, dto.StatusUnavailable, d.News.Status)
	assert.Equal(t, dto.StatusRejected, d.Sentiment.Status)
	assert.Equal(t, MessageNoData, d.Sentiment.Message)
	assert.Equal(t, dto.StatusOK, d.BullBear.Status)
	assert.Equal(t, []string{"income_statement", "news", "sentiment"}, d.DegradedSections())
}

func TestAggregateRejectsBlankInput(t *testing.T) {
	f := newFixture()
	_, err := f.service().Aggregate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, 0, f.fmp.searches)
}

func TestAggregateIgnoresHistoryFailure(t *testing.T) {
	f := newFixture()
	f.history.err = errors.New("db down")

	d, err := f.service().Aggregate(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", d.Ticker)
}

func TestCachedSectionsServeHitsAndSkipFailures(t *testing.T) {
	f := newFixture()
	f.store = cache.NewMemory(time.Minute, time.Minute)
	f.yahoo.bars = dailyBars(10)
	f.ai.err = errNetwork
	svc := f.service()

	first := svc.FetchPriceSeries(context.Background(), "AAPL")
	second := svc.FetchPriceSeries(context.Background(), "AAPL")
	assert.Equal(t, 1, f.yahoo.calls)
	assert.Equal(t, first.Data.Points, second.Data.Points)

	svc.GenerateBullBear(context.Background(), "AAPL")
	svc.GenerateBullBear(context.Background(), "AAPL")
	assert.Equal(t, 2, f.ai.calls)
}

func TestNewsCacheKeyChangesWithDate(t *testing.T) {
	f := newFixture()
	f.store = cache.NewMemory(time.Hour, time.Minute)
	svc := f.service()

	svc.FetchNews(context.Background(), "AAPL")
	svc.FetchNews(context.Background(), "AAPL")
	assert.Equal(t, 1, f.finnhub.newsCalls)

	svc.now = func() time.Time { return fixedNow.AddDate(0, 0, 1) }
	svc.FetchNews(context.Background(), "AAPL")
	assert.Equal(t, 2, f.finnhub.newsCalls)
}

func TestRecentSearches(t *testing.T) {
	f := newFixture()
	f.fmp.matches["Apple"] = "AAPL"
	svc := f.service()

	_, err := svc.Aggregate(context.Background(), "Apple")
	require.NoError(t, err)
	_, err = svc.Aggregate(context.Background(), "MSFT")
	require.NoError(t, err)

	recent, err := svc.RecentSearches(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "MSFT", recent[0].Ticker)
	assert.Equal(t, "AAPL", recent[1].Ticker)
	assert.Equal(t, dto.StatusEmpty, recent[1].Statuses["news"])
}
