package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/dashboard/repository"
	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/cache"
	"golang-stock-dashboard/pkg/common"
	"golang-stock-dashboard/pkg/logger"
	"golang-stock-dashboard/pkg/utils"

	"github.com/guregu/null/v6"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	priceRange         = "5y"
	incomeStatementMax = 5
	newsMax            = 5
	newsWindowDays     = 365

	MessageNoData            = "No data available."
	MessageNoNews            = "No news available."
	MessageNoSentiment       = "No sentiment data available."
	MessageNoIncomeStatement = "No income statement data available."
	MessageNoPriceHistory    = "No price history available."
	aiErrorPrefix            = "AI Error: "
)

// ErrEmptyQuery is returned by Aggregate when the input is blank.
var ErrEmptyQuery = errors.New("query must not be empty")

// DashboardService resolves free text to a ticker and aggregates every dashboard section for it.
type DashboardService interface {
	Resolve(ctx context.Context, text string) string
	FetchProfile(ctx context.Context, ticker string) dto.CompanyProfile
	FetchPriceSeries(ctx context.Context, ticker string) dto.Section[dto.PriceSeries]
	FetchIncomeStatement(ctx context.Context, ticker string) dto.Section[[]dto.IncomeStatementRow]
	FetchNews(ctx context.Context, ticker string) dto.Section[[]dto.NewsItem]
	FetchSentiment(ctx context.Context, ticker string) dto.Section[json.RawMessage]
	GenerateBullBear(ctx context.Context, ticker string) dto.Section[string]
	Aggregate(ctx context.Context, text string) (*dto.Dashboard, error)
	RecentSearches(ctx context.Context, limit int) ([]dto.SearchRecordResponse, error)
}

type dashboardService struct {
	cfg         *config.Config
	log         *logger.Logger
	fmpRepo     repository.FMPRepository
	iexRepo     repository.IEXRepository
	yahooRepo   repository.YahooFinanceRepository
	finnhubRepo repository.FinnhubRepository
	feedRepo    repository.NewsFeedRepository
	aiRepo      repository.AIRepository
	historyRepo repository.SearchHistoryRepository
	cache       cache.Cache
	location    *time.Location
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service. feedRepo may be nil when the RSS fallback is off.
func NewDashboardService(cfg *config.Config, log *logger.Logger,
	fmpRepo repository.FMPRepository,
	iexRepo repository.IEXRepository,
	yahooRepo repository.YahooFinanceRepository,
	finnhubRepo repository.FinnhubRepository,
	feedRepo repository.NewsFeedRepository,
	aiRepo repository.AIRepository,
	historyRepo repository.SearchHistoryRepository,
	store cache.Cache) DashboardService {
	if store == nil {
		store = cache.NewNoop()
	}
	if historyRepo == nil {
		historyRepo = repository.NewNoopSearchHistoryRepository()
	}
	return &dashboardService{
		cfg:         cfg,
		log:         log,
		fmpRepo:     fmpRepo,
		iexRepo:     iexRepo,
		yahooRepo:   yahooRepo,
		finnhubRepo: finnhubRepo,
		feedRepo:    feedRepo,
		aiRepo:      aiRepo,
		historyRepo: historyRepo,
		cache:       store,
		location:    utils.LoadLocation(cfg.App.TimeZone),
		now:         time.Now,
	}
}

// Resolve returns the first fuzzy search match, or the input itself when there is none.
func (s *dashboardService) Resolve(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	key := fmt.Sprintf(common.CacheKeyResolve, strings.ToLower(text))
	var ticker string
	if s.cacheGet(ctx, key, &ticker) && ticker != "" {
		return ticker
	}

	results, err := s.fmpRepo.SearchSymbol(ctx, text)
	if err != nil {
		s.logDegraded(ctx, "resolve", text, statusFromError(err), err)
		return text
	}
	if len(results) == 0 || strings.TrimSpace(results[0].Symbol) == "" {
		s.log.DebugContext(ctx, "No search match, using input as ticker", logger.StringField("query", text))
		return text
	}

	ticker = results[0].Symbol
	s.cacheSet(ctx, key, ticker, s.cfg.Cache.DefaultTTL)
	return ticker
}

// FetchProfile combines the logo and the metadata; each half fails on its own.
func (s *dashboardService) FetchProfile(ctx context.Context, ticker string) dto.CompanyProfile {
	key := fmt.Sprintf(common.CacheKeyDashboardSection, common.SectionProfile, ticker)
	var profile dto.CompanyProfile
	if s.cacheGet(ctx, key, &profile) {
		return profile
	}

	profile = dto.CompanyProfile{Ticker: ticker}

	logo, err := s.iexRepo.Logo(ctx, ticker)
	switch {
	case err != nil:
		profile.LogoStatus = statusFromError(err)
		s.logDegraded(ctx, common.SectionProfile+".logo", ticker, profile.LogoStatus, err)
	case logo == "":
		profile.LogoStatus = dto.StatusEmpty
	default:
		profile.LogoStatus = dto.StatusOK
		profile.LogoURL = null.StringFrom(logo)
	}

	summary, err := s.yahooRepo.QuoteSummary(ctx, ticker)
	switch {
	case err != nil:
		profile.MetadataStatus = statusFromError(err)
		s.logDegraded(ctx, common.SectionProfile+".metadata", ticker, profile.MetadataStatus, err)
	case summary == nil:
		profile.MetadataStatus = dto.StatusEmpty
	default:
		profile.MetadataStatus = dto.StatusOK
		profile.Name = summary.LongName
		profile.Sector = summary.Sector
		profile.Industry = summary.Industry
		profile.CurrentPrice = summary.CurrentPrice
		profile.FiftyTwoWeekHigh = summary.FiftyTwoWeekHigh
		profile.FiftyTwoWeekLow = summary.FiftyTwoWeekLow
	}

	if !isDegraded(profile.LogoStatus) && !isDegraded(profile.MetadataStatus) {
		s.cacheSet(ctx, key, profile, s.cfg.Cache.DefaultTTL)
	}
	return profile
}

// FetchPriceSeries returns five years of daily closes with their moving averages and chart series.
func (s *dashboardService) FetchPriceSeries(ctx context.Context, ticker string) dto.Section[dto.PriceSeries] {
	key := fmt.Sprintf(common.CacheKeyDashboardSection, common.SectionPrices, ticker)
	return cached(ctx, s, key, s.cfg.Cache.DefaultTTL, func() dto.Section[dto.PriceSeries] {
		bars, err := s.yahooRepo.DailyHistory(ctx, ticker, priceRange)
		if err != nil {
			status := statusFromError(err)
			s.logDegraded(ctx, common.SectionPrices, ticker, status, err)
			return failedSection[dto.PriceSeries](status, MessageNoPriceHistory)
		}
		if len(bars) == 0 {
			return dto.Empty[dto.PriceSeries](MessageNoPriceHistory)
		}

		points := buildPricePoints(bars, s.location)
		return dto.OK(dto.PriceSeries{
			Ticker: ticker,
			Range:  priceRange,
			Points: points,
			Charts: buildCharts(points),
		})
	})
}

// FetchIncomeStatement returns at most five annual rows in provider order.
func (s *dashboardService) FetchIncomeStatement(ctx context.Context, ticker string) dto.Section[[]dto.IncomeStatementRow] {
	key := fmt.Sprintf(common.CacheKeyDashboardSection, common.SectionIncomeStatement, ticker)
	return cached(ctx, s, key, s.cfg.Cache.DefaultTTL, func() dto.Section[[]dto.IncomeStatementRow] {
		statements, err := s.fmpRepo.IncomeStatements(ctx, ticker, incomeStatementMax)
		if err != nil {
			status := statusFromError(err)
			s.logDegraded(ctx, common.SectionIncomeStatement, ticker, status, err)
			return failedSection[[]dto.IncomeStatementRow](status, MessageNoIncomeStatement)
		}
		if len(statements) == 0 {
			return dto.Empty[[]dto.IncomeStatementRow](MessageNoIncomeStatement)
		}
		if len(statements) > incomeStatementMax {
			statements = statements[:incomeStatementMax]
		}

		rows := make([]dto.IncomeStatementRow, 0, len(statements))
		for _, st := range statements {
			rows = append(rows, dto.IncomeStatementRow{
				Date:      st.Date,
				Revenue:   st.Revenue,
				EBITDA:    st.EBITDA,
				NetIncome: st.NetIncome,
			})
		}
		return dto.OK(rows)
	})
}

// NewsWindow returns the 365 days ending today in the service time zone.
func (s *dashboardService) NewsWindow() (from, to time.Time) {
	to = utils.StartOfDay(s.now().In(s.location))
	return to.AddDate(0, 0, -newsWindowDays), to
}

// FetchNews returns at most five headlines from the trailing year.
func (s *dashboardService) FetchNews(ctx context.Context, ticker string) dto.Section[[]dto.NewsItem] {
	from, to := s.NewsWindow()
	key := fmt.Sprintf(common.CacheKeyNews, ticker, to.Format(common.DateLayout))
	return cached(ctx, s, key, s.cfg.Cache.DefaultTTL, func() dto.Section[[]dto.NewsItem] {
		news, err := s.finnhubRepo.CompanyNews(ctx, ticker, from, to)
		if err != nil {
			status := statusFromError(err)
			s.logDegraded(ctx, common.SectionNews, ticker, status, err)
			return failedSection[[]dto.NewsItem](status, MessageNoNews)
		}

		items := make([]dto.NewsItem, 0, newsMax)
		for _, n := range news {
			if len(items) == newsMax {
				break
			}
			item := dto.NewsItem{
				Headline: n.Headline,
				URL:      n.URL,
				Source:   n.Source,
				Summary:  n.Summary,
			}
			if n.Datetime > 0 {
				item.PublishedAt = utils.ToPointer(time.Unix(n.Datetime, 0).In(s.location))
			}
			items = append(items, item)
		}

		if len(items) == 0 && s.cfg.News.RSSFallback && s.feedRepo != nil {
			items = s.fallbackNews(ctx, ticker, from, to)
		}
		if len(items) == 0 {
			return dto.Empty[[]dto.NewsItem](MessageNoNews)
		}
		return dto.OK(items)
	})
}

// fallbackNews reads the headline feed and keeps items published inside the window.
func (s *dashboardService) fallbackNews(ctx context.Context, ticker string, from, to time.Time) []dto.NewsItem {
	headlines, err := s.feedRepo.Headlines(ctx, ticker)
	if err != nil {
		s.logDegraded(ctx, common.SectionNews+".rss", ticker, statusFromError(err), err)
		return nil
	}

	end := to.AddDate(0, 0, 1)
	items := make([]dto.NewsItem, 0, newsMax)
	for _, h := range headlines {
		if len(items) == newsMax {
			break
		}
		if h.PublishedAt == nil || h.PublishedAt.Before(from) || !h.PublishedAt.Before(end) {
			continue
		}
		items = append(items, h)
	}
	return items
}

// FetchSentiment passes the provider's sentiment value through unchanged.
func (s *dashboardService) FetchSentiment(ctx context.Context, ticker string) dto.Section[json.RawMessage] {
	key := fmt.Sprintf(common.CacheKeyDashboardSection, common.SectionSentiment, ticker)
	return cached(ctx, s, key, s.cfg.Cache.DefaultTTL, func() dto.Section[json.RawMessage] {
		raw, err := s.finnhubRepo.NewsSentiment(ctx, ticker)
		if err != nil {
			status := statusFromError(err)
			s.logDegraded(ctx, common.SectionSentiment, ticker, status, err)
			return failedSection[json.RawMessage](status, MessageNoSentiment)
		}
		if len(raw) == 0 {
			return dto.Empty[json.RawMessage](MessageNoSentiment)
		}
		return dto.OK(raw)
	})
}

// GenerateBullBear asks the configured model for the narrative. Any failure becomes a warning.
func (s *dashboardService) GenerateBullBear(ctx context.Context, ticker string) dto.Section[string] {
	key := fmt.Sprintf(common.CacheKeyDashboardSection, common.SectionBullBear, ticker)
	return cached(ctx, s, key, s.cfg.Cache.NarrativeTTL, func() dto.Section[string] {
		text, err := s.aiRepo.GenerateBullBear(ctx, ticker)
		if err != nil {
			status := statusFromError(err)
			if status == dto.StatusEmpty {
				status = dto.StatusUnavailable
			}
			s.logDegraded(ctx, common.SectionBullBear, ticker, status, err)
			return dto.Failed[string](status, aiErrorPrefix+err.Error())
		}
		if strings.TrimSpace(text) == "" {
			return dto.Failed[string](dto.StatusMalformed, aiErrorPrefix+"empty response")
		}
		return dto.OK(text)
	})
}

// Aggregate resolves the input and fetches every section in render order.
func (s *dashboardService) Aggregate(ctx context.Context, text string) (*dto.Dashboard, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}

	ticker := s.Resolve(ctx, text)
	s.log.InfoContext(ctx, "Aggregating dashboard", logger.StringField("query", text), logger.StringField("ticker", ticker))

	d := &dto.Dashboard{
		Query:       text,
		Ticker:      ticker,
		GeneratedAt: s.now().In(s.location),
	}
	d.Profile = s.FetchProfile(ctx, ticker)
	d.Prices = s.FetchPriceSeries(ctx, ticker)
	d.News = s.FetchNews(ctx, ticker)
	d.Sentiment = s.FetchSentiment(ctx, ticker)
	d.IncomeStatement = s.FetchIncomeStatement(ctx, ticker)
	d.BullBear = s.GenerateBullBear(ctx, ticker)

	s.recordSearch(ctx, d)
	return d, nil
}

func (s *dashboardService) recordSearch(ctx context.Context, d *dto.Dashboard) {
	statuses, err := json.Marshal(d.Statuses())
	if err != nil {
		s.log.WarnContext(ctx, "Failed to encode section statuses", logger.ErrorField(err))
		return
	}

	record := &entity.SearchHistory{
		Query:            d.Query,
		Ticker:           d.Ticker,
		Statuses:         datatypes.JSON(statuses),
		DegradedSections: pq.StringArray(d.DegradedSections()),
	}
	if err := s.historyRepo.Create(ctx, record); err != nil {
		s.log.WarnContext(ctx, "Failed to record search", logger.StringField("ticker", d.Ticker), logger.ErrorField(err))
	}
}

// RecentSearches returns the latest recorded lookups, newest first.
func (s *dashboardService) RecentSearches(ctx context.Context, limit int) ([]dto.SearchRecordResponse, error) {
	records, err := s.historyRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent searches: %w", err)
	}

	out := make([]dto.SearchRecordResponse, 0, len(records))
	for _, r := range records {
		resp := dto.SearchRecordResponse{
			ID:               r.ID,
			Query:            r.Query,
			Ticker:           r.Ticker,
			Statuses:         map[string]dto.Status{},
			DegradedSections: []string(r.DegradedSections),
			CreatedAt:        r.CreatedAt,
		}
		if len(r.Statuses) > 0 {
			if err := json.Unmarshal(r.Statuses, &resp.Statuses); err != nil {
				s.log.WarnContext(ctx, "Failed to decode recorded statuses", logger.IntField("id", int(r.ID)), logger.ErrorField(err))
			}
		}
		if resp.DegradedSections == nil {
			resp.DegradedSections = []string{}
		}
		out = append(out, resp)
	}
	return out, nil
}

// cached serves key from the cache, or runs fetch and stores the result unless it is a failure.
func cached[T any](ctx context.Context, s *dashboardService, key string, ttl time.Duration, fetch func() dto.Section[T]) dto.Section[T] {
	var hit dto.Section[T]
	if s.cacheGet(ctx, key, &hit) {
		return hit
	}

	section := fetch()
	if section.Cacheable() {
		s.cacheSet(ctx, key, section, ttl)
	}
	return section
}

func (s *dashboardService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.log.WarnContext(ctx, "Cache read failed", logger.StringField("key", key), logger.ErrorField(err))
		return false
	}
	if found {
		s.log.DebugContext(ctx, "Cache hit", logger.StringField("key", key))
	}
	return found
}

func (s *dashboardService) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.log.WarnContext(ctx, "Cache write failed", logger.StringField("key", key), logger.ErrorField(err))
	}
}

func (s *dashboardService) logDegraded(ctx context.Context, section, ticker string, status dto.Status, err error) {
	s.log.WarnContext(ctx, "Dashboard section degraded",
		logger.StringField("section", section),
		logger.StringField("ticker", ticker),
		logger.StringField("status", string(status)),
		logger.ErrorField(err),
	)
}

// statusFromError maps repository errors onto section statuses. A not-found answer is
// a valid empty result, everything unclassified is treated as transport.
func statusFromError(err error) dto.Status {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return dto.StatusEmpty
	case errors.Is(err, repository.ErrProviderRejected):
		return dto.StatusRejected
	case errors.Is(err, repository.ErrMalformedResponse):
		return dto.StatusMalformed
	}
	return dto.StatusUnavailable
}

// failedSection builds the section for a repository error. Not-found becomes empty.
func failedSection[T any](status dto.Status, message string) dto.Section[T] {
	if status == dto.StatusEmpty {
		return dto.Empty[T](message)
	}
	return dto.Failed[T](status, MessageNoData)
}

func isDegraded(status dto.Status) bool {
	return status != dto.StatusOK && status != dto.StatusEmpty
}
