package config

import (
	"fmt"
	"time"
)

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	Currency   CurrencyConfig `mapstructure:"currency"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	Logging    LoggingConfig  `mapstructure:"logging"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path        string        `mapstructure:"path"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

type DefaultsConfig struct {
	Currency string `mapstructure:"currency"`
}

type CurrencyConfig struct {
	// Reference is the currency balances are normalized to before sufficiency checks.
	Reference string        `mapstructure:"reference"`
	RedisAddr string        `mapstructure:"redis_addr"`
	RedisDB   int           `mapstructure:"redis_db"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

type LedgerConfig struct {
	MaxRetries int `mapstructure:"max_retries"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "", BusyTimeout: 5 * time.Second},
		Defaults: DefaultsConfig{Currency: "USD"},
		Currency: CurrencyConfig{Reference: "TRY", CacheTTL: time.Hour},
		Ledger:   LedgerConfig{MaxRetries: 3},
		Logging:  LoggingConfig{Level: "info", Format: "console"},
	}
}

func (c *Config) Validate() error {
	if len(c.Defaults.Currency) != 3 {
		return fmt.Errorf("defaults.currency must be a 3-letter code, got %q", c.Defaults.Currency)
	}
	if len(c.Currency.Reference) != 3 {
		return fmt.Errorf("currency.reference must be a 3-letter code, got %q", c.Currency.Reference)
	}
	if c.Ledger.MaxRetries < 1 {
		return fmt.Errorf("ledger.max_retries must be at least 1, got %d", c.Ledger.MaxRetries)
	}
	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout must not be negative")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
