// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blob

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/safety-points/db"
)

func setupSQLStore(t *testing.T) *SQLStore {
	t.Helper()

	conn, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	// Every pooled connection to :memory: would get its own database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	store, err := NewSQLStore(conn, db.DialectSQLite, "http://localhost:3318/blobs")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestSQLStore_PutListFetch(t *testing.T) {
	ctx := context.Background()
	store := setupSQLStore(t)

	obj, err := store.Put(ctx, "leaderboard.json", []byte(`{"departments":[]}`), &PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if obj.URL != "http://localhost:3318/blobs/leaderboard.json" {
		t.Errorf("Unexpected URL '%s'", obj.URL)
	}

	if _, err := store.Put(ctx, "infractions.json", []byte(`{"infractions":[]}`), nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	objects, err := store.List(ctx, "leader")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(objects) != 1 || objects[0].Pathname != "leaderboard.json" {
		t.Fatalf("Expected only leaderboard.json, got %+v", objects)
	}
	if objects[0].ContentType != "application/json" {
		t.Errorf("Expected content type application/json, got '%s'", objects[0].ContentType)
	}
	if objects[0].Size != int64(len(`{"departments":[]}`)) {
		t.Errorf("Unexpected size %d", objects[0].Size)
	}

	body, err := store.Fetch(ctx, objects[0].URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(body) != `{"departments":[]}` {
		t.Errorf("Unexpected body '%s'", body)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 objects, got %d", len(all))
	}
	for _, o := range all {
		if o.Pathname == "infractions.json" && o.ContentType != "application/octet-stream" {
			t.Errorf("Expected default content type, got '%s'", o.ContentType)
		}
	}
}

func TestSQLStore_ListPrefix(t *testing.T) {
	ctx := context.Background()
	store := setupSQLStore(t)

	for _, name := range []string{"leaderboard.json", "leaderboard.json.bak", "Leaderboard.json", "infractions.json", "ünicode/a.json"} {
		if _, err := store.Put(ctx, name, []byte("{}"), nil); err != nil {
			t.Fatalf("Put %s failed: %v", name, err)
		}
	}

	tests := []struct {
		prefix   string
		expected []string
	}{
		{"", []string{"Leaderboard.json", "infractions.json", "leaderboard.json", "leaderboard.json.bak", "ünicode/a.json"}},
		{"leaderboard.json", []string{"leaderboard.json", "leaderboard.json.bak"}},
		{"Leader", []string{"Leaderboard.json"}},
		{"ünicode/", []string{"ünicode/a.json"}},
		{"leaderboard.json.bak.old", nil},
		{"%", nil},
	}

	for _, tt := range tests {
		t.Run("prefix "+tt.prefix, func(t *testing.T) {
			objects, err := store.List(ctx, tt.prefix)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(objects) != len(tt.expected) {
				t.Fatalf("Expected %d objects, got %+v", len(tt.expected), objects)
			}
			for i, name := range tt.expected {
				if objects[i].Pathname != name {
					t.Errorf("Object %d: expected '%s', got '%s'", i, name, objects[i].Pathname)
				}
			}
		})
	}
}

func TestSQLStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := setupSQLStore(t)

	for _, body := range []string{"first", "second"} {
		if _, err := store.Put(ctx, "doc.json", []byte(body), nil); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	body, ct, err := store.Open(ctx, "doc.json")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if string(body) != "second" {
		t.Errorf("Expected last write to win, got '%s'", body)
	}
	if ct != "application/octet-stream" {
		t.Errorf("Unexpected content type '%s'", ct)
	}

	objects, _ := store.List(ctx, "doc.json")
	if len(objects) != 1 {
		t.Errorf("Expected a single object after overwrite, got %d", len(objects))
	}
}

func TestSQLStore_FetchErrors(t *testing.T) {
	ctx := context.Background()
	store := setupSQLStore(t)

	if _, err := store.Fetch(ctx, "http://localhost:3318/blobs/missing.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := store.Fetch(ctx, "https://elsewhere.example/blobs/x.json"); !errors.Is(err, ErrForeignURL) {
		t.Errorf("Expected ErrForeignURL, got %v", err)
	}
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("http://localhost/blobs")

	store.Put(ctx, "infractions.json.bak", []byte("old"), nil)

	_, ok, err := Find(ctx, store, "infractions.json")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if ok {
		t.Error("Prefix match must not count as the exact object")
	}

	store.Put(ctx, "infractions.json", []byte("new"), nil)
	obj, ok, err := Find(ctx, store, "infractions.json")
	if err != nil || !ok {
		t.Fatalf("Expected object, got ok=%v err=%v", ok, err)
	}
	if obj.Pathname != "infractions.json" {
		t.Errorf("Unexpected pathname '%s'", obj.Pathname)
	}
}
