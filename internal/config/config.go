package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Fetcher struct {
		PythonBin      string `yaml:"python_bin"`
		ScriptsDir     string `yaml:"scripts_dir"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"fetcher"`
	Warm struct {
		Cron     string `yaml:"cron"`
		Tickers  string `yaml:"tickers"`
		Period   string `yaml:"period"`
		Interval string `yaml:"interval"`
	} `yaml:"warm"`
	Signals struct {
		SMAWindow        int     `yaml:"sma_window"`
		MomentumLookback int     `yaml:"momentum_lookback"`
		YieldThreshold   float64 `yaml:"yield_threshold"`
	} `yaml:"signals"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

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
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("PYTHON_BIN"); v != "" {
		cfg.Fetcher.PythonBin = v
	}
	if v := os.Getenv("SCRIPTS_DIR"); v != "" {
		cfg.Fetcher.ScriptsDir = v
	}
	if v := os.Getenv("FETCH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fetcher.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("WARM_CRON"); v != "" {
		cfg.Warm.Cron = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/market.db"
	}
	if cfg.Fetcher.PythonBin == "" {
		cfg.Fetcher.PythonBin = "python3"
	}
	if cfg.Fetcher.ScriptsDir == "" {
		cfg.Fetcher.ScriptsDir = "scripts"
	}
	if cfg.Fetcher.TimeoutSeconds == 0 {
		cfg.Fetcher.TimeoutSeconds = 60
	}
	if cfg.Warm.Tickers == "" {
		cfg.Warm.Tickers = "SPY,TIP"
	}
	if cfg.Warm.Period == "" {
		cfg.Warm.Period = "11mo"
	}
	if cfg.Warm.Interval == "" {
		cfg.Warm.Interval = "1d"
	}
	if cfg.Signals.SMAWindow == 0 {
		cfg.Signals.SMAWindow = 20
	}
	if cfg.Signals.MomentumLookback == 0 {
		cfg.Signals.MomentumLookback = 10
	}
	if cfg.Signals.YieldThreshold == 0 {
		cfg.Signals.YieldThreshold = 1.32
	}

	return cfg, nil
}

// Validate checks that all required fields are sane.
func (c *Config) Validate() error {
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if c.Fetcher.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetcher.timeout_seconds must be positive")
	}
	if c.Signals.SMAWindow <= 0 {
		return fmt.Errorf("signals.sma_window must be positive")
	}
	if c.Signals.MomentumLookback < 2 {
		return fmt.Errorf("signals.momentum_lookback must be at least 2")
	}
	return nil
}
