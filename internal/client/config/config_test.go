package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "blocnotes.db", c.LocalDBPath)
	assert.Equal(t, "blocnotes-cache", c.CacheDir)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "blocnotes", c.S3Bucket)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Empty(t, c.RemoteDSN)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"cmd"}
	defer func() { os.Args = oldArgs }()

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "blocnotes.db", cfg.LocalDBPath)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"cmd", "-db", "/tmp/x.db", "-dsn", "postgres://h/db", "-t", "5"}
	defer func() { os.Args = oldArgs }()

	cfg := LoadConfig()

	assert.Equal(t, "/tmp/x.db", cfg.LocalDBPath)
	assert.Equal(t, "postgres://h/db", cfg.RemoteDSN)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "blocnotes-cache", cfg.CacheDir)
}
