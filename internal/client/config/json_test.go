package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysNonZeroFields(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
		"remote_dsn": "postgres://example/notes",
		"s3_endpoint": "http://127.0.0.1:9000",
		"s3_bucket": "notes-blobs",
		"request_timeout": 30
	}`), 0o600))

	oldArgs := os.Args
	os.Args = []string{"cmd", "-c", file}
	defer func() { os.Args = oldArgs }()

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "postgres://example/notes", cfg.RemoteDSN)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.S3Endpoint)
	assert.Equal(t, "notes-blobs", cfg.S3Bucket)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)

	// untouched fields keep their defaults
	assert.Equal(t, "blocnotes.db", cfg.LocalDBPath)
	assert.Equal(t, "us-east-1", cfg.S3Region)
}

func TestParseJson_NoFlagMeansNoJson(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"cmd"}
	defer func() { os.Args = oldArgs }()

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "blocnotes.db", cfg.LocalDBPath)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"cmd", "-config", "/nonexistent/config.json"}
	defer func() { os.Args = oldArgs }()

	var cfg Config
	cfg.LoadDefaults()
	assert.Panics(t, func() { parseJson(&cfg) })
}
