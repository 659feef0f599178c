// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package blob provides the object store that holds the JSON documents.

# Store Interface

Every backend implements Store:

	objects, err := store.List(ctx, "leaderboard.json")
	body, err := store.Fetch(ctx, objects[0].URL)
	obj, err := store.Put(ctx, "leaderboard.json", data, &blob.PutOptions{
		ContentType: "application/json",
	})

Objects are addressed by pathname and published at a store-assigned URL.
Put overwrites unconditionally; there is no versioning or precondition.

Find is a helper that lists by prefix and returns the exact match:

	obj, ok, err := blob.Find(ctx, store, "infractions.json")

# Backends

  - SQLStore: one table in SQLite (modernc.org/sqlite) or PostgreSQL (lib/pq).
    Objects are published under the server's /blobs/ route.
  - S3Store: objects in an S3 bucket (aws-sdk-go-v2). Supports custom
    endpoints for S3-compatible services.
  - MemoryStore: process-local map, for development.

SQLStore and MemoryStore also implement Open(ctx, pathname), which the
HTTP layer uses to serve their objects publicly.
*/
package blob
