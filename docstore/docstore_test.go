// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/danielhkuo/safety-points/blob"
)

type counterDoc struct {
	Count int `json:"count"`
}

func TestLoad_SeedsMissingDocument(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemoryStore("http://localhost/blobs")
	docs := New(blobs)

	data, err := docs.Load(ctx, "counter.json", counterDoc{Count: 7})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != `{"count":7}` {
		t.Errorf("Expected seeded default, got '%s'", data)
	}

	objects, _ := blobs.List(ctx, "counter.json")
	if len(objects) != 1 {
		t.Fatalf("Expected seeded object in store, got %d", len(objects))
	}
	if objects[0].ContentType != ContentType {
		t.Errorf("Expected content type %s, got '%s'", ContentType, objects[0].ContentType)
	}

	// Existing documents are returned untouched, never reseeded
	blobs.Put(ctx, "counter.json", []byte(`{"count":42}`), nil)
	data, err = docs.Load(ctx, "counter.json", counterDoc{Count: 7})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != `{"count":42}` {
		t.Errorf("Expected stored document, got '%s'", data)
	}
}

func TestGet_MissingDocument(t *testing.T) {
	docs := New(blob.NewMemoryStore("http://localhost/blobs"))

	if _, err := docs.Get(context.Background(), "nope.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_NoLostUpdates(t *testing.T) {
	ctx := context.Background()
	docs := New(blob.NewMemoryStore("http://localhost/blobs"))
	const key = "counter.json"
	const n = 25

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := docs.Update(ctx, key, func(ctx context.Context) error {
				var doc counterDoc
				data, err := docs.Get(ctx, key)
				if err != nil && !errors.Is(err, ErrNotFound) {
					return err
				}
				if err == nil {
					if err := json.Unmarshal(data, &doc); err != nil {
						return err
					}
				}
				doc.Count++
				return docs.Save(ctx, key, doc)
			})
			if err != nil {
				t.Errorf("Update failed: %v", err)
			}
		}()
	}
	wg.Wait()

	data, err := docs.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	var doc counterDoc
	json.Unmarshal(data, &doc)
	if doc.Count != n {
		t.Errorf("Expected count %d, got %d", n, doc.Count)
	}
}

func TestLoad_SeedDoesNotClobberConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	docs := New(blob.NewMemoryStore("http://localhost/blobs"))
	const key = "list.json"

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			docs.Update(ctx, key, func(ctx context.Context) error {
				var items []string
				if data, err := docs.Get(ctx, key); err == nil {
					json.Unmarshal(data, &items)
				}
				items = append(items, strconv.Itoa(n))
				return docs.Save(ctx, key, items)
			})
		}(i)
		go func() {
			defer wg.Done()
			docs.Load(ctx, key, []string{})
		}()
	}
	wg.Wait()

	data, _ := docs.Get(ctx, key)
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(items) != 10 {
		t.Errorf("Expected all 10 appends to survive seeding, got %d: %v", len(items), items)
	}
}
