package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Run("overlays set variables", func(t *testing.T) {
		t.Setenv("HAULBAY_SERVER_URL", "https://env.haulbay.example")
		t.Setenv("HAULBAY_REQUEST_TIMEOUT", "25s")
		t.Setenv("HAULBAY_LOG_PRETTY", "true")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "https://env.haulbay.example", cfg.ServerBaseURL)
		assert.Equal(t, 25*time.Second, cfg.RequestTimeout)
		assert.True(t, cfg.LogPretty)
		assert.Equal(t, "haulbay.db", cfg.ProfileDBPath, "unset variables leave defaults untouched")
	})

	t.Run("no variables set → no changes", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "https://api.haulbay.local", cfg.ServerBaseURL)
		assert.Equal(t, "haulbay.db", cfg.ProfileDBPath)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 5*time.Minute, cfg.SessionRecheckInterval)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("malformed duration panics", func(t *testing.T) {
		t.Setenv("HAULBAY_REQUEST_TIMEOUT", "soon")

		cfg := &Config{}
		cfg.LoadDefaults()
		assert.Panics(t, func() { parseEnv(cfg) })
	})
}
