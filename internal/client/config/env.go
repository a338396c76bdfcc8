package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// EnvConfig is a DTO used exclusively for environment lookup. Pointer fields
// with noinit distinguish "not set" from zero values: envconfig leaves the
// pointer nil when the variable is absent, so only set variables overlay the
// existing Config.
type EnvConfig struct {
	ServerBaseURL          *string        `env:"HAULBAY_SERVER_URL,noinit"`
	ProfileDBPath          *string        `env:"HAULBAY_PROFILE_DB,noinit"`
	LogLevel               *string        `env:"HAULBAY_LOG_LEVEL,noinit"`
	RequestTimeout         *time.Duration `env:"HAULBAY_REQUEST_TIMEOUT,noinit"`
	SessionRecheckInterval *time.Duration `env:"HAULBAY_SESSION_RECHECK,noinit"`
	LogPretty              *bool          `env:"HAULBAY_LOG_PRETTY,noinit"`
}

// parseEnv overlays Config with values from the process environment.
// Malformed values (e.g. an unparseable duration) panic, matching the JSON
// loader's behavior.
func parseEnv(cfg *Config) {
	var ec EnvConfig
	if err := envconfig.Process(context.Background(), &ec); err != nil {
		panic(err)
	}

	if ec.ServerBaseURL != nil {
		cfg.ServerBaseURL = *ec.ServerBaseURL
	}
	if ec.ProfileDBPath != nil {
		cfg.ProfileDBPath = *ec.ProfileDBPath
	}
	if ec.LogLevel != nil {
		cfg.LogLevel = *ec.LogLevel
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.SessionRecheckInterval != nil {
		cfg.SessionRecheckInterval = *ec.SessionRecheckInterval
	}
	if ec.LogPretty != nil {
		cfg.LogPretty = *ec.LogPretty
	}
}
