package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang-stock-dashboard/internal/dashboard/config"
	delivery "golang-stock-dashboard/internal/dashboard/delivery/http"
	_ "golang-stock-dashboard/internal/dashboard/docs"
	"golang-stock-dashboard/internal/dashboard/service"
	"golang-stock-dashboard/pkg/logger"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the dashboard web server",
	Run:   runServe,
}

func loadConfigAndLogger() (*config.Config, *logger.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return cfg, appLogger
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := loadConfigAndLogger()
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Dashboard Service",
		logger.Field("name", cfg.App.Name),
		logger.StringField("ai_provider", cfg.AI.Provider),
		logger.StringField("cache_driver", cfg.Cache.Driver),
	)

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize dashboard", logger.ErrorField(err))
	}
	defer app.close()

	// Jobs still running must finish before the deferred close releases their resources.
	var background sync.WaitGroup
	if cfg.Digest.Enabled {
		digestSvc, err := service.NewDigestService(cfg, appLogger, app.dashboard, app.notifier)
		if err != nil {
			appLogger.Fatal("Failed to initialize watchlist digest", logger.ErrorField(err))
		}
		goBackground(ctx, &background, digestSvc.Start)
	}

	e, err := delivery.NewServer(app.dashboard, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize HTTP server", logger.ErrorField(err))
	}

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	background.Wait()
	appLogger.Info("Server exiting")
}

// goBackground runs fn on its own goroutine and tracks it in wg.
func goBackground(ctx context.Context, wg *sync.WaitGroup, fn func(context.Context)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		fn(ctx)
	}()
}
