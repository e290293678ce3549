package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dayto852/okx-pro-bot/journal"
	"github.com/Dayto852/okx-pro-bot/market"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete bot configuration.
type Config struct {
	OKX      OKXConfig      `json:"okx" yaml:"okx"`
	Market   MarketConfig   `json:"market" yaml:"market"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Account  AccountConfig  `json:"account" yaml:"account"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
}

// OKXConfig holds exchange credentials and endpoint selection.
type OKXConfig struct {
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	SecretKey  string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`
	Passphrase string `json:"passphrase,omitempty" yaml:"passphrase,omitempty"`
	Mode       string `json:"mode" yaml:"mode"` // okx_demo or live
	BaseURL    string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// Demo reports whether requests go to OKX demo trading. Any mode starting
// with "okx" is a demo mode; use e.g. "live" for the real account.
func (o OKXConfig) Demo() bool {
	return strings.HasPrefix(strings.ToLower(o.Mode), "okx")
}

// MarketConfig controls what the candle poller fetches.
type MarketConfig struct {
	Symbol         string   `json:"symbol" yaml:"symbol"`
	Timeframe      string   `json:"timeframe" yaml:"timeframe"`
	UpdateInterval int      `json:"update_interval" yaml:"update_interval"` // seconds
	Limit          int      `json:"limit" yaml:"limit"`
	Coins          []string `json:"coins,omitempty" yaml:"coins,omitempty"`
}

// Interval returns UpdateInterval as a duration.
func (m MarketConfig) Interval() time.Duration {
	return time.Duration(m.UpdateInterval) * time.Second
}

// JournalConfig selects the trade log backend.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Path returns the file the selected backend uses.
func (j JournalConfig) Path() string {
	if j.Type == "sqlite" {
		return j.DBPath
	}
	return j.TradesFile
}

// AccountConfig holds the paper balance used for summaries.
type AccountConfig struct {
	StartBalance float64 `json:"start_balance" yaml:"start_balance"`
}

// StrategyConfig names the strategy shown to the user. Nothing runs it.
type StrategyConfig struct {
	Name string `json:"name" yaml:"name"`
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
// on top of Default.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// Load builds the runtime configuration: defaults or the file at path, then
// the dotenv file, then the process environment. Empty paths are skipped.
func Load(path, dotenv string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = readFile(path); err != nil {
			return nil, err
		}
	}

	if err := LoadDotenv(dotenv); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadDotenv loads KEY=VALUE pairs from path into the environment. Variables
// already set win. A missing file is not an error.
func LoadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load dotenv %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	get := func(keys ...string) (string, bool) {
		for _, k := range keys {
			if v := getenv(k); v != "" {
				return v, true
			}
		}
		return "", false
	}

	if v, ok := get("OKX_API_KEY"); ok {
		c.OKX.APIKey = v
	}
	if v, ok := get("OKX_SECRET_KEY", "OKX_API_SECRET"); ok {
		c.OKX.SecretKey = v
	}
	if v, ok := get("OKX_PASSPHRASE", "OKX_API_PASSPHRASE"); ok {
		c.OKX.Passphrase = v
	}
	if v, ok := get("MODE"); ok {
		c.OKX.Mode = v
	}
	if v, ok := get("SYMBOL"); ok {
		c.Market.Symbol = v
	}
	if v, ok := get("TIMEFRAME"); ok {
		c.Market.Timeframe = v
	}
	if v, ok := get("UPDATE_INTERVAL"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("UPDATE_INTERVAL: %w", err)
		}
		c.Market.UpdateInterval = n
	}
	if v, ok := get("TRADES_FILE"); ok {
		c.Journal.TradesFile = v
	}
	return nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise).
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.OKX.Mode == "" {
		return fmt.Errorf("okx.mode is required")
	}
	if c.Market.Symbol == "" {
		return fmt.Errorf("market.symbol is required")
	}
	if _, err := market.InstID(c.Market.Symbol); err != nil {
		return fmt.Errorf("market.symbol: %w", err)
	}
	if _, err := market.Bar(c.Market.Timeframe); err != nil {
		return fmt.Errorf("market.timeframe: %w", err)
	}
	if c.Market.UpdateInterval <= 0 {
		return fmt.Errorf("market.update_interval must be positive")
	}
	if c.Market.Limit <= 0 || c.Market.Limit > 300 {
		return fmt.Errorf("market.limit must be between 1 and 300")
	}
	if c.Account.StartBalance < 0 {
		return fmt.Errorf("account.start_balance must not be negative")
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && c.Journal.TradesFile == "" {
		return fmt.Errorf("journal trades_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		OKX: OKXConfig{
			Mode:    "okx_demo",
			BaseURL: "https://www.okx.com",
		},
		Market: MarketConfig{
			Symbol:         "BTC/USDT:USDT",
			Timeframe:      "1m",
			UpdateInterval: 5,
			Limit:          150,
			Coins:          append([]string(nil), market.DefaultCoins...),
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "logs/trades.csv",
			DBPath:     "logs/trades.sqlite",
		},
		Account: AccountConfig{
			StartBalance: journal.DefaultStartBalance,
		},
		Strategy: StrategyConfig{
			Name: "RSI + EMA crossover",
		},
	}
}
