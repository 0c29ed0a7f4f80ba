package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. USERBOOK_DATABASE_DSN.
const EnvPrefix = "USERBOOK"

// envConfig uses pointers so that only variables actually present override
// what is already in Config.
type envConfig struct {
	EndpointAddrHTTP *string        `envconfig:"ADDRESS"`
	DatabaseDSN      *string        `envconfig:"DATABASE_DSN"`
	SeedSampleData   *bool          `envconfig:"SEED_SAMPLE_DATA"`
	RateLimitRPS     *float64       `envconfig:"RATE_LIMIT_RPS"`
	RateLimitBurst   *int           `envconfig:"RATE_LIMIT_BURST"`
	ShutdownTimeout  *time.Duration `envconfig:"SHUTDOWN_TIMEOUT"`
	LogLevel         *string        `envconfig:"LOG_LEVEL"`
	TrustedProxies   *[]string      `envconfig:"TRUSTED_PROXIES"`
}

// loadDotEnv is a seam for tests.
var loadDotEnv = func() { _ = godotenv.Load() }

// parseEnv loads .env when present and applies USERBOOK_* variables.
// Existing process variables win over .env entries.
func parseEnv(config *Config) {
	loadDotEnv()

	var e envConfig
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		panic(err)
	}

	if e.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *e.EndpointAddrHTTP
	}
	if e.DatabaseDSN != nil {
		config.DatabaseDSN = *e.DatabaseDSN
	}
	if e.SeedSampleData != nil {
		config.SeedSampleData = *e.SeedSampleData
	}
	if e.RateLimitRPS != nil {
		config.RateLimitRPS = *e.RateLimitRPS
	}
	if e.RateLimitBurst != nil {
		config.RateLimitBurst = *e.RateLimitBurst
	}
	if e.ShutdownTimeout != nil {
		config.ShutdownTimeout = *e.ShutdownTimeout
	}
	if e.LogLevel != nil {
		config.LogLevel = *e.LogLevel
	}
	if e.TrustedProxies != nil {
		config.TrustedProxies = *e.TrustedProxies
	}
}
