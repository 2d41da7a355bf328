package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/raidellg/blocnotes/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// given as integer seconds. Zero values leave the current Config untouched.
type JsonConfig struct {
	LocalDBPath         string `json:"local_db_path"`
	CacheDir            string `json:"cache_dir"`
	RemoteDSN           string `json:"remote_dsn"`
	S3Endpoint          string `json:"s3_endpoint"`
	S3Region            string `json:"s3_region"`
	S3AccessKey         string `json:"s3_access_key"`
	S3SecretKey         string `json:"s3_secret_key"`
	S3Bucket            string `json:"s3_bucket"`
	JWTSecret           string `json:"jwt_secret"`
	RequestTimeout      int    `json:"request_timeout"`
	OnlineCheckInterval int    `json:"online_check_interval"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flag. No flag means no JSON. Read or unmarshal errors panic;
// configuration is resolved once at startup.
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

	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.CacheDir != "" {
		cfg.CacheDir = jc.CacheDir
	}
	if jc.RemoteDSN != "" {
		cfg.RemoteDSN = jc.RemoteDSN
	}
	if jc.S3Endpoint != "" {
		cfg.S3Endpoint = jc.S3Endpoint
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.JWTSecret != "" {
		cfg.JWTSecret = jc.JWTSecret
	}
	if jc.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout) * time.Second
	}
	if jc.OnlineCheckInterval > 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval) * time.Second
	}
}
