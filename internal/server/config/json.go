package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userbook/internal/flagx"
	"github.com/dmitrijs2005/userbook/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations
// accept strings such as "5s" or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP string          `json:"endpoint_addr_http"`
	DatabaseDSN      string          `json:"database_dsn"`
	SeedSampleData   *bool           `json:"seed_sample_data"`
	RateLimitRPS     *float64        `json:"rate_limit_rps"`
	RateLimitBurst   *int            `json:"rate_limit_burst"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
	LogLevel         string          `json:"log_level"`
	TrustedProxies   []string        `json:"trusted_proxies"`
}

// parseJson overlays values from the file named by -c/-config. Absent keys
// leave the current values alone. An unreadable or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SeedSampleData != nil {
		config.SeedSampleData = *c.SeedSampleData
	}
	if c.RateLimitRPS != nil {
		config.RateLimitRPS = *c.RateLimitRPS
	}
	if c.RateLimitBurst != nil {
		config.RateLimitBurst = *c.RateLimitBurst
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.TrustedProxies != nil {
		config.TrustedProxies = c.TrustedProxies
	}
}
