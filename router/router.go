// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/safety-points/blob"
	"github.com/danielhkuo/safety-points/cliparse"
	"github.com/danielhkuo/safety-points/docstore"
	"github.com/danielhkuo/safety-points/handlers"
	"github.com/danielhkuo/safety-points/middleware"
	"github.com/danielhkuo/safety-points/services"
)

func NewRouter(blobs blob.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// One document store per process so every request shares its write queues
	docs := docstore.New(blobs)

	// Initialize handlers
	leaderboardHandler := handlers.NewLeaderboardHandler(services.NewLeaderboardService(docs, cfg.AdminPassword))
	infractionHandler := handlers.NewInfractionHandler(services.NewInfractionService(docs, cfg.AdminPassword))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	for _, prefix := range []string{"", "/api"} {
		// Leaderboard
		mux.HandleFunc("GET "+prefix+"/leaderboard", middleware.WithLogging(leaderboardHandler.GetLeaderboard))
		mux.HandleFunc("POST "+prefix+"/leaderboard", middleware.WithLogging(leaderboardHandler.PostLeaderboard))

		// Infraction log
		mux.HandleFunc("GET "+prefix+"/infractions", middleware.WithLogging(infractionHandler.GetInfractions))
		mux.HandleFunc("POST "+prefix+"/infractions", middleware.WithLogging(infractionHandler.PostInfraction))
		mux.HandleFunc("DELETE "+prefix+"/infractions", middleware.WithLogging(infractionHandler.DeleteInfraction))
	}

	// Locally stored blobs are published under /blobs
	if opener, ok := blobs.(handlers.BlobOpener); ok {
		blobHandler := handlers.NewBlobHandler(opener)
		mux.HandleFunc("GET /blobs/{pathname...}", middleware.WithLogging(blobHandler.GetBlob))
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("safety-points API v1"))
	})

	return mux
}
