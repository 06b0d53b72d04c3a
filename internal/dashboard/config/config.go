package config

import (
	"fmt"
	"time"

	"golang-stock-dashboard/pkg/config"

	"github.com/go-playground/validator/v10"
)

// Provider holds the settings shared by every external data provider.
type Provider struct {
	BaseURL             string        `mapstructure:"base_url" validate:"required,url"`
	APIKey              string        `mapstructure:"api_key"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"min=1"`
}

// YahooFinance uses two hosts: one for the chart API and one for quoteSummary.
type YahooFinance struct {
	Provider       `mapstructure:",squash"`
	SummaryBaseURL string `mapstructure:"summary_base_url" validate:"required,url"`
	RSSBaseURL     string `mapstructure:"rss_base_url" validate:"required,url"`
}

// Providers groups the market data providers.
type Providers struct {
	FMP          Provider     `mapstructure:"fmp"`
	IEX          Provider     `mapstructure:"iex"`
	YahooFinance YahooFinance `mapstructure:"yahoo_finance"`
	Finnhub      Provider     `mapstructure:"finnhub"`
}

// OpenAI holds the configuration for the OpenAI chat completions API.
type OpenAI struct {
	BaseURL             string        `mapstructure:"base_url" validate:"required,url"`
	APIKey              string        `mapstructure:"api_key"`
	Model               string        `mapstructure:"model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"min=1"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute" validate:"min=1"`
}

// Claude holds the configuration for the Anthropic Messages API.
type Claude struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Model               string        `mapstructure:"model"`
	MaxTokens           int           `mapstructure:"max_tokens"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"min=1"`
}

// AI selects and configures the narrative provider.
type AI struct {
	Provider string `mapstructure:"provider" validate:"oneof=openai gemini claude"`
	OpenAI   OpenAI `mapstructure:"openai"`
	Gemini   Gemini `mapstructure:"gemini"`
	Claude   Claude `mapstructure:"claude"`
}

// Cache selects the cache driver and per-section TTLs.
type Cache struct {
	Driver       string        `mapstructure:"driver" validate:"oneof=none memory redis sqlite"`
	SQLitePath   string        `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl" validate:"gt=0"`
	NarrativeTTL time.Duration `mapstructure:"narrative_ttl" validate:"gt=0"`
}

// News tunes the news section.
type News struct {
	RSSFallback bool `mapstructure:"rss_fallback"`
}

// Digest configures the scheduled watchlist digest.
type Digest struct {
	Enabled bool     `mapstructure:"enabled"`
	Cron    string   `mapstructure:"cron" validate:"required_if=Enabled true"`
	Tickers []string `mapstructure:"tickers" validate:"required_if=Enabled true"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Cache     Cache           `mapstructure:"cache"`
	Providers Providers       `mapstructure:"providers"`
	AI        AI              `mapstructure:"ai"`
	News      News            `mapstructure:"news"`
	Digest    Digest          `mapstructure:"digest"`
	Telegram  Telegram        `mapstructure:"telegram"`
}

// Defaults returns the value of every known key. Registering them lets each key
// be overridden from the environment even when the yaml file omits it.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":      "stock-dashboard",
		"app.env":       "development",
		"app.version":   "0.1.0",
		"app.time_zone": "UTC",

		"logger.level":    "info",
		"logger.encoding": "json",

		"database.enabled":           false,
		"database.host":              "localhost",
		"database.port":              5432,
		"database.user":              "postgres",
		"database.password":          "",
		"database.name":              "stock_dashboard",
		"database.ssl_mode":          "disable",
		"database.time_zone":         "UTC",
		"database.max_idle_conns":    5,
		"database.max_open_conns":    10,
		"database.conn_max_lifetime": "1h",
		"database.log_level":         "warn",

		"redis.host":      "localhost",
		"redis.port":      6379,
		"redis.password":  "",
		"redis.db":        0,
		"redis.pool_size": 10,

		"api.host": "0.0.0.0",
		"api.port": 8080,

		"cache.driver":        "none",
		"cache.sqlite_path":   "cache.db",
		"cache.key_prefix":    "stock-dashboard",
		"cache.default_ttl":   "15m",
		"cache.narrative_ttl": "12h",

		"providers.fmp.base_url":                         "https://financialmodelingprep.com",
		"providers.fmp.api_key":                          "",
		"providers.fmp.timeout":                          "10s",
		"providers.fmp.max_request_per_minute":           300,
		"providers.iex.base_url":                         "https://cloud.iexapis.com",
		"providers.iex.api_key":                          "",
		"providers.iex.timeout":                          "10s",
		"providers.iex.max_request_per_minute":           300,
		"providers.yahoo_finance.base_url":               "https://query1.finance.yahoo.com",
		"providers.yahoo_finance.summary_base_url":       "https://query2.finance.yahoo.com",
		"providers.yahoo_finance.rss_base_url":           "https://feeds.finance.yahoo.com",
		"providers.yahoo_finance.api_key":                "",
		"providers.yahoo_finance.timeout":                "15s",
		"providers.yahoo_finance.max_request_per_minute": 60,
		"providers.finnhub.base_url":                     "https://finnhub.io",
		"providers.finnhub.api_key":                      "",
		"providers.finnhub.timeout":                      "10s",
		"providers.finnhub.max_request_per_minute":       60,

		"ai.provider":                      "openai",
		"ai.openai.base_url":               "https://api.openai.com/v1/chat/completions",
		"ai.openai.api_key":                "",
		"ai.openai.model":                  "gpt-4",
		"ai.openai.timeout":                "90s",
		"ai.openai.max_request_per_minute": 20,
		"ai.gemini.api_key":                "",
		"ai.gemini.model":                  "gemini-2.0-flash",
		"ai.gemini.max_request_per_minute": 15,
		"ai.claude.base_url":               "",
		"ai.claude.api_key":                "",
		"ai.claude.model":                  "claude-sonnet-4-20250514",
		"ai.claude.max_tokens":             1024,
		"ai.claude.timeout":                "90s",
		"ai.claude.max_request_per_minute": 20,

		"news.rss_fallback": false,

		"digest.enabled": false,
		"digest.cron":    "0 8 * * 1-5",
		"digest.tickers": []string{},

		"telegram.bot_token": "",
		"telegram.chat_id":   0,
	}
}

// Load loads the dashboard configuration from the given path and validates it.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, Defaults()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags on the loaded configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
