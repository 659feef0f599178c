// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/safety-points/middleware"
	"github.com/danielhkuo/safety-points/models"
	"github.com/danielhkuo/safety-points/services"
	"github.com/danielhkuo/safety-points/validate"
)

type LeaderboardHandler struct {
	svc *services.LeaderboardService
}

func NewLeaderboardHandler(svc *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

// GetLeaderboard handles GET /leaderboard
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Get(r.Context())
	if err != nil {
		writeError(w, r, "get leaderboard", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, doc)
}

// PostLeaderboard handles POST /leaderboard
// With "test": true only the password is checked.
func (h *LeaderboardHandler) PostLeaderboard(w http.ResponseWriter, r *http.Request) {
	var req models.LeaderboardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validate.ErrInvalidBody.Reason)
		return
	}

	if req.Test {
		if err := h.svc.TestLogin(req.Password); err != nil {
			writeError(w, r, "test login", err)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{OK: true})
		return
	}

	if err := h.svc.Replace(r.Context(), req.Departments, req.Password); err != nil {
		writeError(w, r, "replace leaderboard", err)
		return
	}

	slog.Info("leaderboard replaced", "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
