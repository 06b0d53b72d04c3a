package repository

import (
	"context"
	"encoding/json"
	"time"

	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/entity"
)

// FMPRepository reads ticker search and fundamentals from Financial Modeling Prep.
type FMPRepository interface {
	SearchSymbol(ctx context.Context, query string) ([]dto.FMPSearchResult, error)
	IncomeStatements(ctx context.Context, ticker string, limit int) ([]dto.FMPIncomeStatement, error)
}

// IEXRepository reads company logos from IEX Cloud.
type IEXRepository interface {
	Logo(ctx context.Context, ticker string) (string, error)
}

// YahooFinanceRepository reads price history and company metadata from Yahoo Finance.
type YahooFinanceRepository interface {
	QuoteSummary(ctx context.Context, ticker string) (*dto.YahooQuoteSummary, error)
	DailyHistory(ctx context.Context, ticker, rangeParam string) ([]dto.YahooBar, error)
}

// FinnhubRepository reads company news and news sentiment from Finnhub.
type FinnhubRepository interface {
	CompanyNews(ctx context.Context, ticker string, from, to time.Time) ([]dto.FinnhubNews, error)
	NewsSentiment(ctx context.Context, ticker string) (json.RawMessage, error)
}

// NewsFeedRepository reads headline RSS feeds.
type NewsFeedRepository interface {
	Headlines(ctx context.Context, ticker string) ([]dto.NewsItem, error)
}

// AIRepository generates narrative text for a ticker.
type AIRepository interface {
	GenerateBullBear(ctx context.Context, ticker string) (string, error)
}

// SearchHistoryRepository persists aggregated lookups.
type SearchHistoryRepository interface {
	Create(ctx context.Context, record *entity.SearchHistory) error
	FindRecent(ctx context.Context, limit int) ([]entity.SearchHistory, error)
}
