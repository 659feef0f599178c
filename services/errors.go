// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import "errors"

var (
	ErrNoDocument      = errors.New("no infractions to delete")
	ErrIndexOutOfRange = errors.New("index out of range")
)
