package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"golang-stock-dashboard/internal/dashboard/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func lookupDashboard() *dto.Dashboard {
	return &dto.Dashboard{
		Query:       "Apple",
		Ticker:      "AAPL",
		GeneratedAt: time.Date(2024, 6, 14, 15, 30, 0, 0, time.UTC),
		Profile:     dto.CompanyProfile{Ticker: "AAPL", LogoStatus: dto.StatusEmpty, MetadataStatus: dto.StatusUnavailable},
		Prices:      dto.Failed[dto.PriceSeries](dto.StatusUnavailable, "No data available."),
		News:        dto.Empty[[]dto.NewsItem]("No news available."),
		Sentiment:   dto.OK(json.RawMessage(`{"bullishPercent":0.7}`)),
		BullBear:    dto.OK("Bull: services. Bear: China."),
	}
}

func TestWriteDashboardJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDashboard(&buf, lookupDashboard(), "json"))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "AAPL", got["ticker"])
	assert.Equal(t, "unavailable", got["prices"].(map[string]interface{})["status"])
}

func TestWriteDashboardYAMLUsesJSONKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDashboard(&buf, lookupDashboard(), "yaml"))

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "AAPL", got["ticker"])
	assert.Contains(t, got, "bull_bear")
	sentiment := got["sentiment"].(map[string]interface{})
	assert.Equal(t, 0.7, sentiment["data"].(map[string]interface{})["bullishPercent"])
}

func TestWriteDashboardText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDashboard(&buf, lookupDashboard(), "text"))
	assert.Contains(t, buf.String(), "AAPL (AAPL)")
	assert.Contains(t, buf.String(), "No news available.")
}

func TestWriteDashboardUnknownFormat(t *testing.T) {
	assert.Error(t, writeDashboard(&bytes.Buffer{}, lookupDashboard(), "xml"))
}
