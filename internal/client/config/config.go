package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/dmitrijs2005/fileshare/internal/logging"
)

// Config holds runtime settings for the fileshare CLI.
type Config struct {
	ServerURL           string
	StorePath           string
	RequestTimeout      time.Duration
	ExpiryCheckInterval time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8000"
	c.StorePath = defaultStorePath()
	c.RequestTimeout = 30 * time.Second
	c.ExpiryCheckInterval = 30 * time.Second
	c.LogLevel = "warn"
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "fileshare-session.db"
	}
	return filepath.Join(dir, "fileshare", "session.db")
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Load constructs a Config: defaults, then the JSON file named by the
// "config" flag, then every flag the user set explicitly. fs must have been
// prepared with BindFlags and parsed. Parse failures in the layers are
// returned as errors.
func Load(fs *pflag.FlagSet) (cfg *Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			cfg, err = nil, fmt.Errorf("load config: %v", r)
		}
	}()

	cfg = &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg, configPath(fs))
	parseFlags(cfg, fs)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
