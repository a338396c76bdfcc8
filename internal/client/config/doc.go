// Package config loads runtime configuration for the HaulBay CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), prefix HAULBAY_.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   base URL of the marketplace backend
//	-d string   path of the SQLite profile database
//	-t int      request timeout (seconds)
//	-r int      provisional session recheck interval (seconds)
//	-l string   minimum log level (debug, info, warn, error)
//	-pretty     human-readable console log output
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "https://api.haulbay.example",
//	  "profile_db_path": "haulbay.db",
//	  "request_timeout": "10s",
//	  "session_recheck_interval": "5m",
//	  "log_level": "info",
//	  "log_pretty": false
//	}
//
// Environment variables
//
//	HAULBAY_SERVER_URL       base URL of the marketplace backend
//	HAULBAY_PROFILE_DB       path of the SQLite profile database
//	HAULBAY_REQUEST_TIMEOUT  request timeout (Go duration syntax)
//	HAULBAY_SESSION_RECHECK  provisional session recheck interval (Go duration syntax)
//	HAULBAY_LOG_LEVEL        minimum log level
//	HAULBAY_LOG_PRETTY       true/false
//
// Primary API
//
//   - type Config                     — runtime settings for the CLI
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, env, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
