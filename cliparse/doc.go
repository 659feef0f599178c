// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

main loads a .env file (github.com/joho/godotenv) before calling ParseFlags,
so values there behave like ordinary environment variables.

# Config Fields

  - Port: Server listen port (default: 3318)
  - AdminPassword: Shared admin password (optional; writes fail closed without it)
  - BlobBackend: sqlite (default), postgres, s3 or memory
  - BlobDSN: SQLite file or PostgreSQL connection string
  - PublicURL: External URL of the server (default: http://localhost:<port>)
  - S3Bucket, S3Region, S3Prefix, S3Endpoint, S3PublicURL: s3 backend settings
  - LogFormat: text (default) or json
  - LogLevel: debug, info (default), warn, error

# CLI Flags

	-p               Server port
	-public-url      Public base URL
	-b               Blob backend
	-d               Blob database DSN
	-s3-bucket       S3 bucket
	-s3-region       S3 region
	-s3-prefix       S3 key prefix
	-s3-endpoint     S3-compatible endpoint
	-s3-public-url   Public bucket URL
	-admin-password  Admin password
	-log-format      Log format
	-log-level       Log level

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	PUBLIC_URL      → -public-url
	BLOB_BACKEND    → -b
	BLOB_DSN        → -d (then DATABASE_URL)
	S3_BUCKET       → -s3-bucket
	AWS_REGION      → -s3-region
	S3_PREFIX       → -s3-prefix
	S3_ENDPOINT     → -s3-endpoint
	S3_PUBLIC_URL   → -s3-public-url
	ADMIN_PASSWORD  → -admin-password
	LOG_FORMAT      → -log-format
	LOG_LEVEL       → -log-level

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - PORT is not a number
  - the postgres backend has no DSN
  - the s3 backend has no bucket
  - the backend, log format or log level is unknown
*/
package cliparse
