package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"server_base_url":          "https://staging.haulbay.example",
		"profile_db_path":          "/tmp/haulbay-staging.db",
		"request_timeout":          "30s",
		"session_recheck_interval": "2m",
		"log_level":                "debug",
		"log_pretty":               true,
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "https://staging.haulbay.example", cfg.ServerBaseURL)
		assert.Equal(t, "/tmp/haulbay-staging.db", cfg.ProfileDBPath)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 2*time.Minute, cfg.SessionRecheckInterval)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.LogPretty)
	})

	t.Run("partial file keeps unnamed values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"server_base_url": "https://partial.haulbay.example",
		})
		os.Args = []string{"testbin", "-config", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "https://partial.haulbay.example", cfg.ServerBaseURL)
		assert.Equal(t, "haulbay.db", cfg.ProfileDBPath)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			ServerBaseURL:  "https://defaults.haulbay.example",
			RequestTimeout: 42 * time.Second,
		}
		parseJson(cfg)

		assert.Equal(t, "https://defaults.haulbay.example", cfg.ServerBaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
