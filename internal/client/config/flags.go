package config

import (
	"flag"
	"os"
	"time"

	"github.com/haulbay/haulbay-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   base URL of the marketplace backend (default from Config)
//	-d string   path of the SQLite profile database (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-r int      provisional session recheck interval in seconds (default from Config)
//	-l string   minimum log level (default from Config)
//	-pretty     human-readable console log output
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-t", "-r", "-l", "-pretty"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "s", cfg.ServerBaseURL, "base URL of the marketplace backend")
	fs.StringVar(&cfg.ProfileDBPath, "d", cfg.ProfileDBPath, "path of the SQLite profile database")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	recheckInterval := fs.Int("r", int(cfg.SessionRecheckInterval.Seconds()), "provisional session recheck interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "minimum log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.LogPretty, "pretty", cfg.LogPretty, "human-readable console log output")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.SessionRecheckInterval = time.Duration(*recheckInterval) * time.Second
}
