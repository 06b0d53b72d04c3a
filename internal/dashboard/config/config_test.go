package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "gpt-4", cfg.AI.OpenAI.Model)
	assert.Equal(t, "none", cfg.Cache.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Cache.DefaultTTL)
	assert.Equal(t, "https://financialmodelingprep.com", cfg.Providers.FMP.BaseURL)
	assert.Equal(t, "https://query2.finance.yahoo.com", cfg.Providers.YahooFinance.SummaryBaseURL)
	assert.Equal(t, 10*time.Second, cfg.Providers.Finnhub.Timeout)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadSecretsFromEnvironment(t *testing.T) {
	t.Setenv("PROVIDERS_FMP_API_KEY", "fmp-secret")
	t.Setenv("AI_PROVIDER", "claude")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "fmp-secret", cfg.Providers.FMP.APIKey)
	assert.Equal(t, "claude", cfg.AI.Provider)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai:\n  provider: llama\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestValidateSQLiteNeedsPath(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Cache.Driver = "sqlite"
	cfg.Cache.SQLitePath = ""
	assert.Error(t, cfg.Validate())
}

func TestShippedConfigKeepsCacheOff(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "configs", "config-dashboard.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.Cache.Driver)
	assert.Equal(t, "America/New_York", cfg.App.TimeZone)
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, cfg.Digest.Tickers)
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Cache.DefaultTTL = 0
	assert.Error(t, cfg.Validate())

	cfg.Cache.DefaultTTL = time.Minute
	cfg.Cache.NarrativeTTL = -time.Second
	assert.Error(t, cfg.Validate())
}
