package config

import (
	"time"

	"github.com/spf13/pflag"
)

const (
	flagConfig      = "config"
	flagServer      = "server"
	flagStore       = "store"
	flagTimeout     = "timeout"
	flagExpiryCheck = "expiry-check"
	flagLogLevel    = "log-level"
)

// BindFlags registers the configuration flags on fs. The flag defaults are
// the built-in defaults, so --help shows them.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "path to JSON config file")
	fs.StringP(flagServer, "a", d.ServerURL, "backend base URL")
	fs.StringP(flagStore, "s", d.StorePath, `session store file ("" keeps the session in memory)`)
	fs.DurationP(flagTimeout, "t", d.RequestTimeout, "per-request timeout")
	fs.DurationP(flagExpiryCheck, "i", d.ExpiryCheckInterval, "local token expiry check interval (0 disables)")
	fs.StringP(flagLogLevel, "l", d.LogLevel, "log level: debug, info, warn or error")
}

func configPath(fs *pflag.FlagSet) string {
	if fs == nil || fs.Lookup(flagConfig) == nil {
		return ""
	}
	path, err := fs.GetString(flagConfig)
	if err != nil {
		panic(err)
	}
	return path
}

// parseFlags overlays cfg with the flags the user actually set. Unset flags
// leave the JSON or default value alone.
func parseFlags(cfg *Config, fs *pflag.FlagSet) {
	if fs == nil {
		return
	}

	if fs.Changed(flagServer) {
		cfg.ServerURL = mustString(fs, flagServer)
	}
	if fs.Changed(flagStore) {
		cfg.StorePath = mustString(fs, flagStore)
	}
	if fs.Changed(flagTimeout) {
		cfg.RequestTimeout = mustDuration(fs, flagTimeout)
	}
	if fs.Changed(flagExpiryCheck) {
		cfg.ExpiryCheckInterval = mustDuration(fs, flagExpiryCheck)
	}
	if fs.Changed(flagLogLevel) {
		cfg.LogLevel = mustString(fs, flagLogLevel)
	}
}

func mustString(fs *pflag.FlagSet, name string) string {
	v, err := fs.GetString(name)
	if err != nil {
		panic(err)
	}
	return v
}

func mustDuration(fs *pflag.FlagSet, name string) time.Duration {
	v, err := fs.GetDuration(name)
	if err != nil {
		panic(err)
	}
	return v
}
