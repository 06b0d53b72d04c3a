package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/dashboard/service"
	"golang-stock-dashboard/pkg/logger"
	"golang-stock-dashboard/pkg/telegram"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	outputFormat string
	notify       bool
)

var lookupCmd = &cobra.Command{
	Use:          "lookup <company or ticker>",
	Short:        "Aggregates one dashboard and prints it",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runLookup,
}

var digestCmd = &cobra.Command{
	Use:          "digest",
	Short:        "Sends the watchlist digest once",
	SilenceUsage: true,
	RunE:         runDigest,
}

func init() {
	lookupCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, json or yaml")
	lookupCmd.Flags().BoolVar(&notify, "notify", false, "Also send the dashboard to the configured Telegram chat")
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, appLogger := loadConfigAndLogger()
	defer func() { _ = appLogger.Sync() }()

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer app.close()

	d, err := app.dashboard.Aggregate(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := writeDashboard(os.Stdout, d, outputFormat); err != nil {
		return err
	}

	if notify {
		if err := app.notifier.SendMessage(telegram.FormatDashboardForTelegram(d)); err != nil {
			return fmt.Errorf("failed to send dashboard: %w", err)
		}
		appLogger.Info("Dashboard sent to Telegram", logger.StringField("ticker", d.Ticker))
	}
	return nil
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, appLogger := loadConfigAndLogger()
	defer func() { _ = appLogger.Sync() }()

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer app.close()

	digestSvc, err := service.NewDigestService(cfg, appLogger, app.dashboard, app.notifier)
	if err != nil {
		return err
	}
	return digestSvc.RunOnce(ctx)
}

func writeDashboard(w io.Writer, d *dto.Dashboard, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "yaml":
		// Round trip through JSON so the yaml keys follow the json tags.
		raw, err := json.Marshal(d)
		if err != nil {
			return err
		}
		var generic interface{}
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		_, err := io.WriteString(w, telegram.FormatDashboardText(d))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
