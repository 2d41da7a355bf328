package config

import (
	"flag"
	"os"
	"time"

	"github.com/raidellg/blocnotes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-db string       path of the local sqlite state file
//	-cache string    root directory of the attachment cache
//	-dsn string      Postgres DSN of the remote row store
//	-s3 string       base endpoint of the S3-compatible blob store
//	-region string   S3 region
//	-access string   S3 access key
//	-secret string   S3 secret key
//	-bucket string   S3 bucket name
//	-jwt string      secret used to verify access tokens
//	-t int           remote request timeout in seconds
//	-i int           online check interval in seconds
//
// os.Args is filtered to the flags handled here, using flagx.FilterArgs, to
// avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-db", "-cache", "-dsn", "-s3", "-region", "-access", "-secret", "-bucket", "-jwt", "-t", "-i",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.LocalDBPath, "db", cfg.LocalDBPath, "path of the local state file")
	fs.StringVar(&cfg.CacheDir, "cache", cfg.CacheDir, "attachment cache directory")
	fs.StringVar(&cfg.RemoteDSN, "dsn", cfg.RemoteDSN, "remote row store DSN")
	fs.StringVar(&cfg.S3Endpoint, "s3", cfg.S3Endpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3Region, "region", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3AccessKey, "access", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "secret", cfg.S3SecretKey, "S3 secret key")
	fs.StringVar(&cfg.S3Bucket, "bucket", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.JWTSecret, "jwt", cfg.JWTSecret, "token verification secret")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "remote request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
