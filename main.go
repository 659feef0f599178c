// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/safety-points/blob"
	"github.com/danielhkuo/safety-points/cliparse"
	"github.com/danielhkuo/safety-points/db"
	"github.com/danielhkuo/safety-points/middleware"
	"github.com/danielhkuo/safety-points/router"
)

func main() {
	var err error

	// A missing .env is fine; the environment and flags still apply
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD not set; all write endpoints will fail")
	}

	// Open the blob store backing both documents
	blobs, closeBlobs, err := openBlobStore(context.Background(), cfg)
	if err != nil {
		slog.Error("blob store setup failed", "backend", cfg.BlobBackend, "error", err)
		os.Exit(1)
	}
	defer closeBlobs()
	slog.Info("Blob store ready", "backend", cfg.BlobBackend)

	// Create router
	mux := router.NewRouter(blobs, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight writes finish
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "public_url", cfg.PublicURL)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

func setupLogger(cfg cliparse.Config) {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// openBlobStore builds the configured backend and returns a cleanup func
func openBlobStore(ctx context.Context, cfg cliparse.Config) (blob.Store, func(), error) {
	noop := func() {}
	localURL := cfg.PublicURL + "/blobs"

	switch cfg.BlobBackend {
	case cliparse.BackendSQLite, cliparse.BackendPostgres:
		dialect := db.DialectSQLite
		open := blob.OpenSQLite
		if cfg.BlobBackend == cliparse.BackendPostgres {
			dialect = db.DialectPostgres
			open = blob.OpenPostgres
		}

		conn, err := open(cfg.BlobDSN)
		if err != nil {
			return nil, noop, err
		}
		store, err := blob.NewSQLStore(conn, dialect, localURL)
		if err != nil {
			conn.Close()
			return nil, noop, err
		}
		return store, func() { conn.Close() }, nil

	case cliparse.BackendS3:
		store, err := blob.NewS3Store(ctx, blob.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Prefix:    cfg.S3Prefix,
			Endpoint:  cfg.S3Endpoint,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case cliparse.BackendMemory:
		slog.Warn("memory blob backend: documents are lost on restart")
		return blob.NewMemoryStore(localURL), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
}
