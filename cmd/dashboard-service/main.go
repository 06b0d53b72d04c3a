package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// @title Stock Dashboard API
// @version 1.0
// @description Resolves a company name or ticker and aggregates profile, prices, news, sentiment, income statement and an AI bull/bear narrative.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{
		Use:   "dashboard-service",
		Short: "Stock research dashboard",
		Long:  `Resolves free text to a ticker and aggregates market data, news and an AI narrative into one dashboard.`,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-dashboard.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, lookupCmd, digestCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing dashboard-service CLI: %s\n", err)
		os.Exit(1)
	}
}
