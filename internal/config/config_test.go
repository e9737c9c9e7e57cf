package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultIsValid(t *testing.T) {
	cfg := NewDefault()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "USD", cfg.Defaults.Currency)
	assert.Equal(t, "TRY", cfg.Currency.Reference)
	assert.Equal(t, 3, cfg.Ledger.MaxRetries)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"short default currency", func(c *Config) { c.Defaults.Currency = "US" }},
		{"empty reference currency", func(c *Config) { c.Currency.Reference = "" }},
		{"zero retries", func(c *Config) { c.Ledger.MaxRetries = 0 }},
		{"negative busy timeout", func(c *Config) { c.Database.BusyTimeout = -1 }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
