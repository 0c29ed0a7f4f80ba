package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "USERBOOK"

type envConfig struct {
	ServerURL      *string        `envconfig:"SERVER_URL"`
	NoticeTTL      *time.Duration `envconfig:"NOTICE_TTL"`
	RequestTimeout *time.Duration `envconfig:"REQUEST_TIMEOUT"`
}

// loadDotEnv is a seam for tests.
var loadDotEnv = func() { _ = godotenv.Load() }

// parseEnv overlays the variables that are actually set.
func parseEnv(cfg *Config) {
	loadDotEnv()

	var e envConfig
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		panic(err)
	}

	if e.ServerURL != nil {
		cfg.ServerURL = *e.ServerURL
	}
	if e.NoticeTTL != nil {
		cfg.NoticeTTL = *e.NoticeTTL
	}
	if e.RequestTimeout != nil {
		cfg.RequestTimeout = *e.RequestTimeout
	}
}
