// Package config handles configuration for the CLI component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the FinKeeper CLI.
//
// Fields:
//   - DatabasePath: sqlite file holding the local key-value store.
//   - Currency: ISO currency code used when rendering amounts.
//   - LoginDelay: simulated network latency on login and registration.
type Config struct {
	DatabasePath string
	Currency     string
	LoginDelay   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "finkeeper.db"
	c.Currency = "USD"
	c.LoginDelay = 500 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
