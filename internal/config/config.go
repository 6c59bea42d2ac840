package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"Stonitor/internal/model"
)

// DefaultWatchlist is the ticker set shown when none is configured.
var DefaultWatchlist = []string{
	"TSLA", "GOOGL", "AMZN", "NVDA", "AMD", "INTC", "MSFT", "META",
	"NFLX", "PLTR", "MCD", "KO", "MA", "SPOT", "AAPL",
}

// Config holds all application configuration.
type Config struct {
	Chart struct {
		Ticker       string      `yaml:"ticker"`
		Range        model.Range `yaml:"range"`
		DiscardStale *bool       `yaml:"discard_stale"`
	} `yaml:"chart"`
	Watchlist struct {
		Tickers         []string      `yaml:"tickers"`
		RefreshInterval time.Duration `yaml:"refresh_interval"`
	} `yaml:"watchlist"`
	Provider struct {
		Name    string        `yaml:"name"`
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"provider"`
	Cache struct {
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		TTL           time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		SnapshotCron string `yaml:"snapshot_cron"`
	} `yaml:"schedule"`
	UI struct {
		FrameInterval time.Duration `yaml:"frame_interval"`
	} `yaml:"ui"`
	LogFile string `yaml:"log_file"`
	Proxy   string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STONITOR_TICKER"); v != "" {
		cfg.Chart.Ticker = v
	}
	if v := os.Getenv("STONITOR_WATCHLIST"); v != "" {
		cfg.Watchlist.Tickers = strings.Split(v, ",")
	}
	if v := os.Getenv("STONITOR_PROVIDER"); v != "" {
		cfg.Provider.Name = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.RedisPassword = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SNAPSHOT"); v != "" {
		cfg.Schedule.SnapshotCron = v
	}
	if v := os.Getenv("STONITOR_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	// Defaults
	cfg.Chart.Ticker = model.NormalizeTicker(cfg.Chart.Ticker)
	if cfg.Chart.Ticker == "" {
		cfg.Chart.Ticker = "TSLA"
	}
	if cfg.Chart.Range == "" {
		cfg.Chart.Range = model.RangeIntraday
	}
	if cfg.Chart.DiscardStale == nil {
		discard := true
		cfg.Chart.DiscardStale = &discard
	}
	if len(cfg.Watchlist.Tickers) == 0 {
		cfg.Watchlist.Tickers = append([]string(nil), DefaultWatchlist...)
	}
	for i, t := range cfg.Watchlist.Tickers {
		cfg.Watchlist.Tickers[i] = model.NormalizeTicker(t)
	}
	if cfg.Watchlist.RefreshInterval == 0 {
		cfg.Watchlist.RefreshInterval = 2 * time.Second
	}
	if cfg.Provider.Name == "" {
		cfg.Provider.Name = "yahoo"
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = "https://query1.finance.yahoo.com"
	}
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = 30 * time.Second
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	if cfg.Schedule.SnapshotCron == "" {
		cfg.Schedule.SnapshotCron = "0 * * * * *"
	}
	if cfg.UI.FrameInterval == 0 {
		cfg.UI.FrameInterval = 100 * time.Millisecond
	}
	if cfg.LogFile == "" {
		cfg.LogFile = "stonitor.log"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Chart.Ticker == "" {
		return fmt.Errorf("chart.ticker is required")
	}
	if !c.Chart.Range.Valid() {
		return fmt.Errorf("chart.range %q is not one of %v", c.Chart.Range, model.Ranges)
	}
	if len(c.Watchlist.Tickers) == 0 {
		return fmt.Errorf("watchlist.tickers must not be empty")
	}
	for i, t := range c.Watchlist.Tickers {
		if t == "" {
			return fmt.Errorf("watchlist.tickers[%d] is empty", i)
		}
	}
	if c.Watchlist.RefreshInterval <= 0 {
		return fmt.Errorf("watchlist.refresh_interval must be positive")
	}
	if c.UI.FrameInterval <= 0 {
		return fmt.Errorf("ui.frame_interval must be positive")
	}
	switch c.Provider.Name {
	case "yahoo", "mock":
	default:
		return fmt.Errorf("provider.name %q is not supported", c.Provider.Name)
	}
	return nil
}
