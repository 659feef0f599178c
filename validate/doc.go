// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate checks inbound payloads and normalizes stored documents.

# Inbound Payloads

	payload, err := validate.ParseInfractionPayload(fields)
	departments, err := validate.SanitizeDepartments(req.Departments)
	index, err := validate.ParseIndex(req.Index)

Failures are *Error values whose Reason is sent to the client:
"Invalid request body", "Invalid department", "Invalid points",
"Invalid description", "Invalid departments payload", "Invalid index".

Strings are trimmed before the non-empty check. Descriptions are limited to
500 characters. Numbers must be finite JSON numbers; strings holding digits
are rejected.

# Stored Documents

NormalizeLeaderboard reports whether a stored leaderboard is usable as is.
NormalizeInfractions drops malformed entries and reports how many were lost.
Both are lossy by design: dropped data is not recoverable.
*/
package validate
