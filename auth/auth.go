// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

var (
	ErrNotConfigured = errors.New("admin password not configured")
	ErrUnauthorized  = errors.New("unauthorized")
)

// digestKey only normalizes lengths before comparison; it is not a secret
var digestKey = []byte("safety-points/admin-password")

// CheckPassword compares the provided password against the configured one.
// An empty configured password fails closed with ErrNotConfigured.
func CheckPassword(configured, provided string) error {
	if configured == "" {
		return ErrNotConfigured
	}
	if !hmac.Equal(digest(provided), digest(configured)) {
		return ErrUnauthorized
	}
	return nil
}

// digest maps a password to a fixed-size HMAC-SHA256 so comparison time
// does not depend on where or whether the lengths differ
func digest(password string) []byte {
	h := hmac.New(sha256.New, digestKey)
	h.Write([]byte(password))
	return h.Sum(nil)
}
