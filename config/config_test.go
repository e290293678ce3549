package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, "BTC/USDT:USDT", cfg.Market.Symbol)
	assert.Equal(t, "1m", cfg.Market.Timeframe)
	assert.Equal(t, 5*time.Second, cfg.Market.Interval())
	assert.Equal(t, 150, cfg.Market.Limit)
	assert.Equal(t, "logs/trades.csv", cfg.Journal.Path())
	assert.Equal(t, 1000.0, cfg.Account.StartBalance)
	assert.True(t, cfg.OKX.Demo())
	assert.Len(t, cfg.Market.Coins, 3)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(*Config) {}, ""},
		{"missing mode", func(c *Config) { c.OKX.Mode = "" }, "okx.mode is required"},
		{"missing symbol", func(c *Config) { c.Market.Symbol = "" }, "market.symbol is required"},
		{"malformed symbol", func(c *Config) { c.Market.Symbol = "BTC/" }, "market.symbol"},
		{"bad timeframe", func(c *Config) { c.Market.Timeframe = "7m" }, "market.timeframe"},
		{"zero interval", func(c *Config) { c.Market.UpdateInterval = 0 }, "market.update_interval must be positive"},
		{"limit too large", func(c *Config) { c.Market.Limit = 301 }, "market.limit must be between 1 and 300"},
		{"negative balance", func(c *Config) { c.Account.StartBalance = -1 }, "account.start_balance"},
		{"bad journal type", func(c *Config) { c.Journal.Type = "parquet" }, "journal.type must be 'csv' or 'sqlite'"},
		{"csv without file", func(c *Config) { c.Journal.TradesFile = "" }, "trades_file required"},
		{"sqlite without db", func(c *Config) {
			c.Journal.Type = "sqlite"
			c.Journal.DBPath = ""
		}, "db_path required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Market.Symbol = "ETH/USDT:USDT"
			cfg.Journal.Type = "sqlite"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("market:\n  symbol: SOL/USDT\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SOL/USDT", cfg.Market.Symbol)
	assert.Equal(t, "1m", cfg.Market.Timeframe)
	assert.Equal(t, "csv", cfg.Journal.Type)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("market: [unterminated"), 0o644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"OKX_API_KEY":        "key",
		"OKX_API_SECRET":     "alt-secret",
		"OKX_API_PASSPHRASE": "alt-pass",
		"OKX_PASSPHRASE":     "pass",
		"SYMBOL":             "ETH/USDT:USDT",
		"TIMEFRAME":          "5m",
		"UPDATE_INTERVAL":    " 10 ",
		"MODE":               "live",
		"TRADES_FILE":        "/tmp/trades.csv",
	}
	getenv := func(k string) string { return env[k] }

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(getenv))

	assert.Equal(t, "key", cfg.OKX.APIKey)
	assert.Equal(t, "alt-secret", cfg.OKX.SecretKey)
	assert.Equal(t, "pass", cfg.OKX.Passphrase)
	assert.Equal(t, "live", cfg.OKX.Mode)
	assert.False(t, cfg.OKX.Demo())
	assert.Equal(t, "ETH/USDT:USDT", cfg.Market.Symbol)
	assert.Equal(t, "5m", cfg.Market.Timeframe)
	assert.Equal(t, 10, cfg.Market.UpdateInterval)
	assert.Equal(t, "/tmp/trades.csv", cfg.Journal.TradesFile)
}

func TestApplyEnvBadInterval(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) string {
		if k == "UPDATE_INTERVAL" {
			return "five"
		}
		return ""
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPDATE_INTERVAL")
}

func TestLoadWithDotenv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("SYMBOL=SOL/USDT:USDT\nTIMEFRAME=15m\n"), 0o644))

	// godotenv does not override variables that are already set
	t.Setenv("TIMEFRAME", "1h")
	t.Setenv("SYMBOL", "")
	require.NoError(t, os.Unsetenv("SYMBOL"))

	cfg, err := Load("", dotenv)
	require.NoError(t, err)
	assert.Equal(t, "SOL/USDT:USDT", cfg.Market.Symbol)
	assert.Equal(t, "1h", cfg.Market.Timeframe)
}

func TestLoadDotenvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotenv(filepath.Join(t.TempDir(), "nope.env")))
	assert.NoError(t, LoadDotenv(""))
}
