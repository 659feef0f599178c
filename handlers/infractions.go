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

type InfractionHandler struct {
	svc *services.InfractionService
}

func NewInfractionHandler(svc *services.InfractionService) *InfractionHandler {
	return &InfractionHandler{svc: svc}
}

// GetInfractions handles GET /infractions
func (h *InfractionHandler) GetInfractions(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Get(r.Context())
	if err != nil {
		writeError(w, r, "get infractions", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, doc)
}

// PostInfraction handles POST /infractions
func (h *InfractionHandler) PostInfraction(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := middleware.ParseJSONBody(r, &fields); err != nil || fields == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validate.ErrInvalidBody.Reason)
		return
	}

	password, _ := fields["password"].(string)
	infraction, err := h.svc.Append(r.Context(), fields, password)
	if err != nil {
		writeError(w, r, "append infraction", err)
		return
	}

	slog.Info("infraction recorded",
		"department", infraction.Department,
		"points", infraction.Points,
		"date", infraction.Date,
	)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// DeleteInfraction handles DELETE /infractions
func (h *InfractionHandler) DeleteInfraction(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteInfractionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validate.ErrInvalidBody.Reason)
		return
	}

	removed, err := h.svc.DeleteAt(r.Context(), req.Index, req.Password)
	if err != nil {
		writeError(w, r, "delete infraction", err)
		return
	}

	slog.Info("infraction deleted",
		"department", removed.Department,
		"points", removed.Points,
		"date", removed.Date,
	)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
