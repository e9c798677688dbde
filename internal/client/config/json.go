package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fileshare/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from "set to the zero value".
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	StorePath           *string         `json:"store_path"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	ExpiryCheckInterval *timex.Duration `json:"expiry_check_interval"`
	LogLevel            *string         `json:"log_level"`
}

// parseJSON overlays cfg with the values present in the file at path. An
// empty path is a no-op. Read and decode errors panic; Load recovers them.
func parseJSON(cfg *Config, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ExpiryCheckInterval != nil {
		cfg.ExpiryCheckInterval = jc.ExpiryCheckInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
