// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/safety-points/blob"
	"github.com/danielhkuo/safety-points/cliparse"
	"github.com/danielhkuo/safety-points/db"
)

// TestPassword is the admin password used by GetTestConfig
const TestPassword = "X"

// TestBlobBaseURL is where test blobs are published
const TestBlobBaseURL = "http://localhost:3318/blobs"

// SetupTestStore creates a fresh in-memory SQLite blob store
func SetupTestStore(t *testing.T) *blob.SQLStore {
	t.Helper()

	conn, err := blob.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Each pooled connection would otherwise see its own empty database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	store, err := blob.NewSQLStore(conn, db.DialectSQLite, TestBlobBaseURL)
	if err != nil {
		t.Fatalf("Failed to create blob store: %v", err)
	}
	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		AdminPassword: TestPassword,
		BlobBackend:   cliparse.BackendSQLite,
		BlobDSN:       ":memory:",
		PublicURL:     "http://localhost:3318",
	}
}

// PutDocument stores raw JSON at key, bypassing all validation
func PutDocument(t *testing.T, store blob.Store, key, data string) {
	t.Helper()

	_, err := store.Put(context.Background(), key, []byte(data), &blob.PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("Failed to put %s: %v", key, err)
	}
}

// ReadDocument decodes the stored document at key into v and reports whether it exists
func ReadDocument(t *testing.T, store blob.Store, key string, v interface{}) bool {
	t.Helper()

	obj, ok, err := blob.Find(context.Background(), store, key)
	if err != nil {
		t.Fatalf("Failed to find %s: %v", key, err)
	}
	if !ok {
		return false
	}
	data, err := store.Fetch(context.Background(), obj.URL)
	if err != nil {
		t.Fatalf("Failed to fetch %s: %v", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to decode %s: %v", key, err)
	}
	return true
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if s, ok := body.(string); ok {
			jsonBody = []byte(s)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
