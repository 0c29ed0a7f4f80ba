package config

import "time"

// Config holds runtime settings for the userbook CLI.
//
// Fields:
//   - ServerURL: base URL of the userbook HTTP API.
//   - NoticeTTL: how long a success or error notice stays visible.
//   - RequestTimeout: per-request limit, 0 means none.
type Config struct {
	ServerURL      string
	NoticeTTL      time.Duration
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.NoticeTTL = 3 * time.Second
	c.RequestTimeout = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
