// Package config loads runtime configuration for the fileshare CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or --config.
//  3. Command-line flags explicitly set by the user.
//
// Supported flags
//
//	-a, --server string          backend base URL
//	-s, --store string           session store file ("" keeps the session in memory)
//	-t, --timeout duration       per-request timeout
//	-i, --expiry-check duration  how often the local token expiry is checked (0 disables)
//	-l, --log-level string       debug | info | warn | error
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "30s" or integer
// nanoseconds. Absent keys keep the default:
//
//	{
//	  "server_url": "http://localhost:8000",
//	  "store_path": "/home/alice/.config/fileshare/session.db",
//	  "request_timeout": "30s",
//	  "expiry_check_interval": "30s",
//	  "log_level": "warn"
//	}
package config
