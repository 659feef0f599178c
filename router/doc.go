// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Safety Points API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(blobs, cfg)

# Endpoints

Health:

	GET /health

Leaderboard:

	GET  /leaderboard - Current standings (seeded on first read)
	POST /leaderboard - Replace standings, or check the password with "test": true

Infractions:

	GET    /infractions - Infraction log, oldest first
	POST   /infractions - Record an infraction
	DELETE /infractions - Delete an infraction by index

The same routes are also served under /api.

Blobs (SQL and memory backends only):

	GET /blobs/{pathname...} - Raw stored document

# Handler Initialization

The router builds a single docstore.Store for the process so that both
services share its per-document write queues.
*/
package router
