package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/pkg/logger"
	"golang-stock-dashboard/pkg/telegram"

	"github.com/robfig/cron/v3"
)

// DigestService aggregates the watchlist on a schedule and pushes a summary to Telegram.
type DigestService interface {
	Start(ctx context.Context)
	RunOnce(ctx context.Context) error
}

type digestService struct {
	cfg         config.Digest
	log         *logger.Logger
	dashboard   DashboardService
	telegramBot telegram.Notifier
	cronParser  cron.Parser
	now         func() time.Time
}

// NewDigestService creates a new digest service. The cron expression is checked up front.
func NewDigestService(cfg *config.Config, log *logger.Logger, dashboard DashboardService, telegramBot telegram.Notifier) (DigestService, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if cfg.Digest.Enabled {
		if _, err := parser.Parse(cfg.Digest.Cron); err != nil {
			return nil, fmt.Errorf("invalid digest cron %q: %w", cfg.Digest.Cron, err)
		}
	}
	return &digestService{
		cfg:         cfg.Digest,
		log:         log,
		dashboard:   dashboard,
		telegramBot: telegramBot,
		cronParser:  parser,
		now:         time.Now,
	}, nil
}

// Start runs the digest on its schedule until ctx is done.
func (s *digestService) Start(ctx context.Context) {
	c := cron.New(cron.WithParser(s.cronParser))
	_, err := c.AddFunc(s.cfg.Cron, func() {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Error("Watchlist digest failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		s.log.Error("Failed to schedule watchlist digest", logger.StringField("cron", s.cfg.Cron), logger.ErrorField(err))
		return
	}

	s.log.Info("Watchlist digest scheduled", logger.StringField("cron", s.cfg.Cron), logger.IntField("tickers", len(s.cfg.Tickers)))
	c.Start()

	<-ctx.Done()
	s.log.Info("Watchlist digest stopping")
	<-c.Stop().Done()
}

// RunOnce aggregates every watchlist ticker and sends the digest. A failing ticker is skipped.
func (s *digestService) RunOnce(ctx context.Context) error {
	dashboards := make([]*dto.Dashboard, 0, len(s.cfg.Tickers))
	for _, ticker := range s.cfg.Tickers {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d, err := s.dashboard.Aggregate(ctx, ticker)
		if err != nil {
			s.log.WarnContext(ctx, "Failed to aggregate watchlist ticker", logger.StringField("ticker", ticker), logger.ErrorField(err))
			continue
		}
		dashboards = append(dashboards, d)
	}

	var errs []error
	for _, msg := range telegram.FormatDigestForTelegram(dashboards, s.now()) {
		if err := s.telegramBot.SendMessage(msg); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to send digest: %w", errors.Join(errs...))
	}

	s.log.InfoContext(ctx, "Watchlist digest sent", logger.IntField("tickers", len(dashboards)))
	return nil
}
