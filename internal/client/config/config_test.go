package config

import (
	"os"
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

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Equal(t, 3*time.Second, c.NoticeTTL)
	assert.Zero(t, c.RequestTimeout)
}

func TestLoadConfig_Layers(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	stubDotEnv(t)

	t.Setenv("USERBOOK_SERVER_URL", "http://env:1")
	t.Setenv("USERBOOK_NOTICE_TTL", "5s")
	path := writeTempJSON(t, "", "", map[string]any{"notice_ttl": "7s"})
	os.Args = []string{"cli", "-config", path, "-t", "4"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "http://env:1", cfg.ServerURL)
	assert.Equal(t, 7*time.Second, cfg.NoticeTTL)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_BadDurationPanics(t *testing.T) {
	stubDotEnv(t)
	t.Setenv("USERBOOK_REQUEST_TIMEOUT", "soon")

	require.Panics(t, func() { parseEnv(&Config{}) })
}
