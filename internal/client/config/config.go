package config

import "time"

// Config holds runtime settings for the HaulBay CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the marketplace backend (scheme + host).
//   - ProfileDBPath: path of the SQLite profile database holding tokens,
//     identity blobs and locally saved listings.
//   - RequestTimeout: per-request timeout for backend calls.
//   - SessionRecheckInterval: how often a provisional user session is
//     re-validated against the server.
//   - LogLevel: minimum log level (debug, info, warn, error).
//   - LogPretty: human-readable console log output instead of JSON.
type Config struct {
	ServerBaseURL          string
	ProfileDBPath          string
	LogLevel               string
	RequestTimeout         time.Duration
	SessionRecheckInterval time.Duration
	LogPretty              bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://api.haulbay.local"
	c.ProfileDBPath = "haulbay.db"
	c.RequestTimeout = 10 * time.Second
	c.SessionRecheckInterval = 5 * time.Minute
	c.LogLevel = "info"
	c.LogPretty = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
