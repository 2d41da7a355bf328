// Package config loads the client configuration from defaults, an optional
// JSON file and command-line flags, in that order of precedence.
package config

import "time"

// Config holds runtime settings for the blocnotes CLI.
//
// RemoteDSN, the S3 settings and JWTSecret may stay empty for a purely local
// session; sync then fails with a typed error instead of refusing to start.
type Config struct {
	// LocalDBPath is the sqlite file holding the note document and session.
	LocalDBPath string
	// CacheDir is the root of the attachment file cache.
	CacheDir string
	// RemoteDSN is the Postgres connection string of the note-row store.
	RemoteDSN string

	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string

	// JWTSecret verifies access tokens on login; empty disables verification.
	JWTSecret string

	// RequestTimeout bounds each remote blob call.
	RequestTimeout time.Duration
	// OnlineCheckInterval is how often reachability of the row store is probed.
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.LocalDBPath = "blocnotes.db"
	c.CacheDir = "blocnotes-cache"
	c.S3Region = "us-east-1"
	c.S3Bucket = "blocnotes"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
