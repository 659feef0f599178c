// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/safety-points/auth"
	"github.com/danielhkuo/safety-points/middleware"
	"github.com/danielhkuo/safety-points/services"
	"github.com/danielhkuo/safety-points/validate"
)

// writeError translates a service error into its HTTP status
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *validate.Error

	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		slog.Warn("unauthorized request", "op", op, "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, auth.ErrNotConfigured):
		slog.Error("admin password not configured", "op", op)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server misconfigured")
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Reason)
	case errors.Is(err, services.ErrNoDocument):
		middleware.ErrorResponse(w, http.StatusNotFound, "No infractions to delete")
	case errors.Is(err, services.ErrIndexOutOfRange):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Index out of range")
	default:
		slog.Error("request failed", "op", op, "request_id", middleware.RequestID(r.Context()), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}
