// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Blob backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

const defaultSQLiteDSN = "file:safety-points.db"

type Config struct {
	Port          int
	AdminPassword string

	BlobBackend string
	BlobDSN     string
	// PublicURL is the externally visible server URL; SQL and memory blobs are served under PublicURL/blobs
	PublicURL string

	S3Bucket    string
	S3Region    string
	S3Prefix    string
	S3Endpoint  string
	S3PublicURL string

	LogFormat string
	LogLevel  string
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("safety-points", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.PublicURL, "public-url", "", "Public base URL of this server")

	// Storage
	fs.StringVar(&cfg.BlobBackend, "b", "", "Blob backend (sqlite, postgres, s3 or memory)")
	fs.StringVar(&cfg.BlobDSN, "d", "", "Blob database DSN (sqlite or postgres)")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", "", "S3 bucket")
	fs.StringVar(&cfg.S3Region, "s3-region", "", "S3 region")
	fs.StringVar(&cfg.S3Prefix, "s3-prefix", "", "S3 key prefix")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", "", "S3-compatible endpoint URL")
	fs.StringVar(&cfg.S3PublicURL, "s3-public-url", "", "Public URL of the bucket")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password (prefer env)")

	// Logging
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	envDefault(&cfg.PublicURL, "PUBLIC_URL")
	if cfg.PublicURL == "" {
		cfg.PublicURL = "http://localhost:" + strconv.Itoa(cfg.Port)
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	// Not required: without it every write fails closed
	envDefault(&cfg.AdminPassword, "ADMIN_PASSWORD")

	envDefault(&cfg.BlobBackend, "BLOB_BACKEND")
	if cfg.BlobBackend == "" {
		cfg.BlobBackend = BackendSQLite
	}
	envDefault(&cfg.BlobDSN, "BLOB_DSN")
	envDefault(&cfg.BlobDSN, "DATABASE_URL")
	envDefault(&cfg.S3Bucket, "S3_BUCKET")
	envDefault(&cfg.S3Region, "AWS_REGION")
	envDefault(&cfg.S3Prefix, "S3_PREFIX")
	envDefault(&cfg.S3Endpoint, "S3_ENDPOINT")
	envDefault(&cfg.S3PublicURL, "S3_PUBLIC_URL")

	switch cfg.BlobBackend {
	case BackendSQLite:
		if cfg.BlobDSN == "" {
			cfg.BlobDSN = defaultSQLiteDSN
		}
	case BackendPostgres:
		if cfg.BlobDSN == "" {
			return Config{}, errors.New("database URL required for postgres (use -d, BLOB_DSN or DATABASE_URL env)")
		}
	case BackendS3:
		if cfg.S3Bucket == "" {
			return Config{}, errors.New("S3_BUCKET required for s3 backend")
		}
	case BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}

	envDefault(&cfg.LogFormat, "LOG_FORMAT")
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	envDefault(&cfg.LogLevel, "LOG_LEVEL")
	if _, err := cfg.SlogLevel(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// SlogLevel converts LogLevel to a slog.Level; empty means info
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

func envDefault(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}
