// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Safety Points API server.

Safety Points tracks a robotics team's per-department safety score and the
log of infractions that changed it. Both live as JSON documents in a blob
store; writes are gated by a single admin password.

# Starting the Server

With no configuration the server keeps its blobs in a local SQLite file:

	ADMIN_PASSWORD=secret go run .

Or with flags:

	go run . -p 3318 -b postgres -d "postgres://..."

A .env file in the working directory is loaded first.

# Configuration

  - ADMIN_PASSWORD (--admin-password): shared admin secret; writes fail with 500 without it
  - PORT (-p): server port (default: 3318)
  - PUBLIC_URL (--public-url): externally visible base URL (default: http://localhost:PORT)
  - BLOB_BACKEND (-b): sqlite, postgres, s3 or memory (default: sqlite)
  - BLOB_DSN or DATABASE_URL (-d): SQL connection string
  - S3_BUCKET, AWS_REGION, S3_PREFIX, S3_ENDPOINT, S3_PUBLIC_URL: s3 backend
  - LOG_FORMAT (--log-format), LOG_LEVEL (--log-level)

# Architecture

  - handlers: HTTP request handlers (leaderboard, infractions, blobs)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - services: leaderboard and infraction log operations
  - docstore: JSON documents over a blob store, with per-document write queues
  - blob: blob store backends (SQL, S3, memory)
  - validate: payload and stored-document validation
  - auth: admin password check
  - models: documents and request/response types
  - db: blob table schema
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
