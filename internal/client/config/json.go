package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/haulbay/haulbay-cli/internal/flagx"
	"github.com/haulbay/haulbay-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify timeouts either as
// strings like "10s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	ProfileDBPath  string         `json:"profile_db_path"`
	LogLevel       string         `json:"log_level"`
	RequestTimeout         timex.Duration `json:"request_timeout"`
	SessionRecheckInterval timex.Duration `json:"session_recheck_interval"`
	LogPretty              *bool          `json:"log_pretty"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags via
// flagx.JsonConfigFlags(); if neither is given, nothing is loaded.
// Read and unmarshal errors panic (caller should recover if desired).
// Empty string fields in the JSON leave the existing value untouched, so a
// partial file only overrides what it names.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.ProfileDBPath != "" {
		cfg.ProfileDBPath = jc.ProfileDBPath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.SessionRecheckInterval.Duration != 0 {
		cfg.SessionRecheckInterval = time.Duration(jc.SessionRecheckInterval.Duration)
	}
	if jc.LogPretty != nil {
		cfg.LogPretty = *jc.LogPretty
	}
}
