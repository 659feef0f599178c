// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth checks the shared admin password.

# Password Check

Every mutating endpoint carries the admin password in its JSON body:

	if err := auth.CheckPassword(cfg.AdminPassword, req.Password); err != nil {
		// auth.ErrNotConfigured → 500, auth.ErrUnauthorized → 401
	}

An unset server password (ADMIN_PASSWORD) makes every check fail with
ErrNotConfigured, so a misconfigured server rejects all writes and the
operator can tell that apart from a wrong guess.

# Comparison

Both values are HMAC-SHA256 digested and compared with hmac.Equal, so
the comparison takes the same time regardless of content or length.
*/
package auth
