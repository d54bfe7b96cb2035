package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradejournal/analytics"
)

// Journal drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config represents the complete journal configuration
type Config struct {
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Analytics AnalyticsConfig `json:"analytics" yaml:"analytics"`
	Web       WebConfig       `json:"web" yaml:"web"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
}

// JournalConfig locates the trade store
type JournalConfig struct {
	Driver string `json:"driver" yaml:"driver"` // sqlite or postgres
	DBPath string `json:"db_path" yaml:"db_path"`
	DSN    string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

// AnalyticsConfig sizes the charts and sets the reporting currency
type AnalyticsConfig struct {
	CumulativeWindow int                `json:"cumulative_window" yaml:"cumulative_window"`
	DailyWindow      int                `json:"daily_window" yaml:"daily_window"`
	DefaultRange     string             `json:"default_range" yaml:"default_range"` // "all", "7d", "30d", ...
	BaseCurrency     string             `json:"base_currency" yaml:"base_currency"`
	Rates            map[string]float64 `json:"rates,omitempty" yaml:"rates,omitempty"` // units per 1 base_currency
}

// WebConfig contains HTTP server parameters
type WebConfig struct {
	Port int `json:"port" yaml:"port"`
}

// LoggingConfig contains logger parameters
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text or json
}

// Options returns the report windows.
func (a AnalyticsConfig) Options() analytics.Options {
	return analytics.Options{
		CumulativeWindow: a.CumulativeWindow,
		DailyWindow:      a.DailyWindow,
	}
}

// RateTable returns the conversion table rooted at BaseCurrency, with
// currency codes upper-cased.
func (a AnalyticsConfig) RateTable() (analytics.Rates, error) {
	return analytics.NewRates(a.BaseCurrency, a.Rates)
}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Journal.Driver {
	case "", DriverSQLite:
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path is required")
		}
	case DriverPostgres:
		if c.Journal.DSN == "" {
			return fmt.Errorf("journal.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("journal.driver must be %q or %q", DriverSQLite, DriverPostgres)
	}
	if c.Analytics.CumulativeWindow < 0 {
		return fmt.Errorf("analytics.cumulative_window must not be negative")
	}
	if c.Analytics.DailyWindow < 0 {
		return fmt.Errorf("analytics.daily_window must not be negative")
	}
	if _, err := analytics.ParseRange(c.Analytics.DefaultRange); err != nil {
		return fmt.Errorf("analytics.default_range: %w", err)
	}
	if c.Analytics.BaseCurrency == "" {
		return fmt.Errorf("analytics.base_currency is required")
	}
	for ccy, v := range c.Analytics.Rates {
		if v <= 0 {
			return fmt.Errorf("analytics.rates.%s must be positive", ccy)
		}
	}
	if _, err := c.Analytics.RateTable(); err != nil {
		return fmt.Errorf("analytics.rates: %w", err)
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port must be between 0 and 65535")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be 'text' or 'json'")
	}
	return nil
}

// ApplyEnv overrides settings from the environment. envFile, when non-empty
// and present, is loaded first with godotenv; variables already set in the
// process environment win over the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if v := os.Getenv("TRADEJOURNAL_DB"); v != "" {
		c.Journal.DBPath = v
	}
	if v := os.Getenv("TRADEJOURNAL_DSN"); v != "" {
		c.Journal.Driver = DriverPostgres
		c.Journal.DSN = v
	}
	if v := os.Getenv("TRADEJOURNAL_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TRADEJOURNAL_PORT: %w", err)
		}
		c.Web.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Driver: DriverSQLite,
			DBPath: "./tradejournal.db",
		},
		Analytics: AnalyticsConfig{
			CumulativeWindow: analytics.DefaultCumulativeWindow,
			DailyWindow:      analytics.DefaultDailyWindow,
			DefaultRange:     analytics.All,
			BaseCurrency:     "USD",
		},
		Web: WebConfig{
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
