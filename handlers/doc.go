// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Safety Points API.

# Handler Types

Each handler is a struct wrapping one service:

  - LeaderboardHandler: department standings and the admin login check
  - InfractionHandler: the infraction log (list, record, delete)
  - BlobHandler: public reads of locally stored blobs

	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardSvc)

# Mutations

Every mutating request carries the admin password in its JSON body:

	POST   /leaderboard {departments, password}
	POST   /leaderboard {password, test: true}   → {ok: true}
	POST   /infractions {department, points, description, password}
	DELETE /infractions {index, password}

# Errors

Service errors are mapped in one place (writeError):

	auth.ErrUnauthorized       → 401
	auth.ErrNotConfigured      → 500 "Server misconfigured"
	*validate.Error            → 400 with the validation reason
	services.ErrNoDocument     → 404
	services.ErrIndexOutOfRange → 400
	anything else              → 500, logged
*/
package handlers
