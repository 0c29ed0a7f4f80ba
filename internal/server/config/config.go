// Package config handles configuration for the server component: defaults,
// environment (optionally from a .env file), a JSON overlay and finally
// command-line flags.
package config

import "time"

// Config holds runtime settings for the userbook server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: postgres:// URL (pgx) or sqlite://path.
//   - SeedSampleData: insert the sample users when the table is empty.
//   - RateLimitRPS / RateLimitBurst: per-IP limit, 0 RPS disables it.
//   - ShutdownTimeout: grace period for in-flight requests on stop.
//   - LogLevel: debug, info, warn or error.
//   - TrustedProxies: CIDRs or IPs whose X-Forwarded-For is believed when
//     picking the client IP. Empty means the peer address is always used.
type Config struct {
	EndpointAddrHTTP string
	DatabaseDSN      string
	SeedSampleData   bool
	RateLimitRPS     float64
	RateLimitBurst   int
	ShutdownTimeout  time.Duration
	LogLevel         string
	TrustedProxies   []string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = "sqlite://userbook.db"
	c.SeedSampleData = false
	c.RateLimitRPS = 0
	c.RateLimitBurst = 10
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.TrustedProxies = nil
}

// LoadConfig builds a Config by applying defaults, then overlaying the
// environment, an optional JSON file and finally command-line flags.
// Malformed input panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
