package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubDotEnv(t *testing.T) {
	t.Helper()
	orig := loadDotEnv
	loadDotEnv = func() {}
	t.Cleanup(func() { loadDotEnv = orig })
}

func TestParseEnv(t *testing.T) {
	stubDotEnv(t)

	t.Setenv("USERBOOK_ADDRESS", "127.0.0.1:9090")
	t.Setenv("USERBOOK_DATABASE_DSN", "postgres://u:p@db:5432/users")
	t.Setenv("USERBOOK_SEED_SAMPLE_DATA", "true")
	t.Setenv("USERBOOK_RATE_LIMIT_RPS", "2.5")
	t.Setenv("USERBOOK_RATE_LIMIT_BURST", "7")
	t.Setenv("USERBOOK_SHUTDOWN_TIMEOUT", "1500ms")
	t.Setenv("USERBOOK_LOG_LEVEL", "debug")
	t.Setenv("USERBOOK_TRUSTED_PROXIES", "10.0.0.0/8,172.16.0.1")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, Config{
		EndpointAddrHTTP: "127.0.0.1:9090",
		DatabaseDSN:      "postgres://u:p@db:5432/users",
		SeedSampleData:   true,
		RateLimitRPS:     2.5,
		RateLimitBurst:   7,
		ShutdownTimeout:  1500 * time.Millisecond,
		LogLevel:         "debug",
		TrustedProxies:   []string{"10.0.0.0/8", "172.16.0.1"},
	}, c)
}

func TestParseEnv_UnsetKeepsValues(t *testing.T) {
	stubDotEnv(t)

	var c Config
	c.LoadDefaults()
	want := c
	parseEnv(&c)

	assert.Equal(t, want, c)
}

func TestParseEnv_BadValuePanics(t *testing.T) {
	stubDotEnv(t)
	t.Setenv("USERBOOK_RATE_LIMIT_BURST", "many")

	var c Config
	require.Panics(t, func() { parseEnv(&c) })
}
