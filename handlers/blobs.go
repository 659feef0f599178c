// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielhkuo/safety-points/blob"
	"github.com/danielhkuo/safety-points/middleware"
)

// BlobOpener is implemented by blob stores that keep object bodies locally
// and publish them through this server.
type BlobOpener interface {
	Open(ctx context.Context, pathname string) ([]byte, string, error)
}

type BlobHandler struct {
	blobs BlobOpener
}

func NewBlobHandler(blobs BlobOpener) *BlobHandler {
	return &BlobHandler{blobs: blobs}
}

// GetBlob handles GET /blobs/{pathname...}
func (h *BlobHandler) GetBlob(w http.ResponseWriter, r *http.Request) {
	pathname := r.PathValue("pathname")
	if pathname == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pathname is required")
		return
	}

	body, contentType, err := h.blobs.Open(r.Context(), pathname)
	if errors.Is(err, blob.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Blob not found")
		return
	}
	if err != nil {
		writeError(w, r, "open blob", err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
