package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/cache"
	"golang-stock-dashboard/pkg/logger"
)

type fakeFMP struct {
	matches    map[string]string
	searchErr  error
	statements []dto.FMPIncomeStatement
	stmtErr    error
	searches   int
}

func (f *fakeFMP) SearchSymbol(_ context.Context, query string) ([]dto.FMPSearchResult, error) {
	f.searches++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if symbol, ok := f.matches[query]; ok {
		return []dto.FMPSearchResult{{Symbol: symbol}}, nil
	}
	return []dto.FMPSearchResult{}, nil
}

func (f *fakeFMP) IncomeStatements(_ context.Context, _ string, _ int) ([]dto.FMPIncomeStatement, error) {
	return f.statements, f.stmtErr
}

type fakeIEX struct {
	logo string
	err  error
}

func (f *fakeIEX) Logo(context.Context, string) (string, error) { return f.logo, f.err }

type fakeYahoo struct {
	summary    *dto.YahooQuoteSummary
	summaryErr error
	bars       []dto.YahooBar
	barsErr    error
	calls      int
}

func (f *fakeYahoo) QuoteSummary(context.Context, string) (*dto.YahooQuoteSummary, error) {
	return f.summary, f.summaryErr
}

func (f *fakeYahoo) DailyHistory(context.Context, string, string) ([]dto.YahooBar, error) {
	f.calls++
	return f.bars, f.barsErr
}

type fakeFinnhub struct {
	news         []dto.FinnhubNews
	newsErr      error
	sentiment    json.RawMessage
	sentimentErr error
	from, to     time.Time
	newsCalls    int
}

func (f *fakeFinnhub) CompanyNews(_ context.Context, _ string, from, to time.Time) ([]dto.FinnhubNews, error) {
	f.newsCalls++
	f.from, f.to = from, to
	return f.news, f.newsErr
}

func (f *fakeFinnhub) NewsSentiment(context.Context, string) (json.RawMessage, error) {
	return f.sentiment, f.sentimentErr
}

type fakeFeed struct {
	items []dto.NewsItem
	err   error
}

func (f *fakeFeed) Headlines(context.Context, string) ([]dto.NewsItem, error) { return f.items, f.err }

type fakeAI struct {
	text  string
	err   error
	calls int
}

func (f *fakeAI) GenerateBullBear(context.Context, string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeHistory struct {
	mu      sync.Mutex
	records []entity.SearchHistory
	err     error
}

func (f *fakeHistory) Create(_ context.Context, record *entity.SearchHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	record.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeHistory) FindRecent(_ context.Context, limit int) ([]entity.SearchHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.SearchHistory, 0, limit)
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.records[i])
	}
	return out, f.err
}

type fixture struct {
	cfg     *config.Config
	fmp     *fakeFMP
	iex     *fakeIEX
	yahoo   *fakeYahoo
	finnhub *fakeFinnhub
	feed    *fakeFeed
	ai      *fakeAI
	history *fakeHistory
	store   cache.Cache
}

func newFixture() *fixture {
	return &fixture{
		cfg: &config.Config{
			Cache: config.Cache{DefaultTTL: time.Minute, NarrativeTTL: time.Hour},
		},
		fmp:     &fakeFMP{matches: map[string]string{}},
		iex:     &fakeIEX{},
		yahoo:   &fakeYahoo{},
		finnhub: &fakeFinnhub{},
		feed:    &fakeFeed{},
		ai:      &fakeAI{},
		history: &fakeHistory{},
		store:   cache.NewNoop(),
	}
}

var fixedNow = time.Date(2024, 6, 14, 15, 30, 0, 0, time.UTC)

func (f *fixture) service() *dashboardService {
	svc := NewDashboardService(f.cfg, logger.NewNop(), f.fmp, f.iex, f.yahoo, f.finnhub, f.feed, f.ai, f.history, f.store).(*dashboardService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

// dailyBars returns n consecutive daily bars with closes 1..n.
func dailyBars(n int) []dto.YahooBar {
	start := time.Date(2019, 6, 14, 0, 0, 0, 0, time.UTC)
	bars := make([]dto.YahooBar, n)
	for i := range bars {
		bars[i] = dto.YahooBar{Timestamp: start.AddDate(0, 0, i).Unix(), Close: float64(i + 1)}
	}
	return bars
}
