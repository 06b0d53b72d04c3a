package main

import (
	"context"
	"fmt"
	"time"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/dashboard/repository"
	"golang-stock-dashboard/internal/dashboard/service"
	"golang-stock-dashboard/pkg/cache"
	"golang-stock-dashboard/pkg/logger"
	"golang-stock-dashboard/pkg/postgres"
	"golang-stock-dashboard/pkg/redis"
	"golang-stock-dashboard/pkg/telegram"

	"google.golang.org/genai"
)

const memoryCacheCleanupInterval = 10 * time.Minute

// application holds everything the commands share. close releases connections in reverse order.
type application struct {
	cfg       *config.Config
	log       *logger.Logger
	dashboard service.DashboardService
	notifier  telegram.Notifier
	closers   []func() error
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("Failed to release resource", logger.ErrorField(err))
		}
	}
}

func newApplication(ctx context.Context, cfg *config.Config, log *logger.Logger) (*application, error) {
	app := &application{cfg: cfg, log: log}

	store, err := app.newCache()
	if err != nil {
		app.close()
		return nil, err
	}

	var historyRepo repository.SearchHistoryRepository
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(postgresConfig(cfg))
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			app.closers = append(app.closers, sqlDB.Close)
		}
		historyRepo = repository.NewSearchHistoryRepository(db.DB)
	}

	aiRepo, err := newAIRepository(ctx, cfg, log)
	if err != nil {
		app.close()
		return nil, err
	}

	var feedRepo repository.NewsFeedRepository
	if cfg.News.RSSFallback {
		feedRepo = repository.NewRSSNewsRepository(cfg, log)
	}

	app.dashboard = service.NewDashboardService(cfg, log,
		repository.NewFMPRepository(cfg, log),
		repository.NewIEXRepository(cfg, log),
		repository.NewYahooFinanceRepository(cfg, log),
		repository.NewFinnhubRepository(cfg, log),
		feedRepo,
		aiRepo,
		historyRepo,
		store,
	)

	app.notifier = telegram.NewNoopNotifier()
	if cfg.Telegram.BotToken != "" {
		notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
		}
		app.notifier = notifier
	}

	return app, nil
}

func (a *application) newCache() (cache.Cache, error) {
	cfg := a.cfg
	switch cfg.Cache.Driver {
	case "memory":
		return cache.NewMemory(cfg.Cache.DefaultTTL, memoryCacheCleanupInterval), nil
	case "redis":
		client, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return cache.NewRedis(client.Client, cfg.Cache.KeyPrefix), nil
	case "sqlite":
		store, err := cache.NewSQLite(cfg.Cache.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite cache: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	default:
		return cache.NewNoop(), nil
	}
}

func newAIRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.AIRepository, error) {
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.AI.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
		}
		return repository.NewGeminiAIRepository(cfg, log, genAiClient), nil
	case "claude":
		return repository.NewClaudeAIRepository(cfg, log), nil
	case "openai":
		return repository.NewOpenAIRepository(cfg, log), nil
	default:
		return nil, fmt.Errorf("invalid ai provider %q", cfg.AI.Provider)
	}
}

func postgresConfig(cfg *config.Config) postgres.Config {
	return postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
}
