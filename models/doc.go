// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines documents, request, and response types for the API.

# Documents

Two singleton JSON documents live in the blob store:

  - LeaderboardDocument (key LeaderboardKey): departments and their points
  - InfractionsDocument (key InfractionsKey): incidents, oldest first

DefaultLeaderboard returns the roster used to seed or reset the leaderboard:
every name in DefaultDepartments at DefaultPoints.

# Domain Types

  - Department: name, points
  - Infraction: department, points (signed delta), description, date (epoch ms)

# Request Types

  - LeaderboardRequest: departments (raw), password, test
  - DeleteInfractionRequest: index (raw), password

Infraction creation bodies are decoded by the validate package directly,
since every field needs a type check.

# Response Types

  - SuccessResponse: success
  - LoginResponse: ok
  - ErrorResponse: error, message

# Constants

	MaxDescriptionLength = 500
	DefaultPoints        = 500
*/
package models
