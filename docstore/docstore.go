// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/safety-points/blob"
)

const ContentType = "application/json"

var ErrNotFound = errors.New("document not found")

// Store reads and writes whole JSON documents kept in a blob store.
// Writes are last-write-wins; mutations must go through Update to be
// serialized against each other within this process.
type Store struct {
	blobs blob.Store
	queue *Serializer
}

func New(blobs blob.Store) *Store {
	return &Store{blobs: blobs, queue: NewSerializer()}
}

// Get returns the raw document stored at key, or ErrNotFound
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	obj, ok, err := blob.Find(ctx, s.blobs, key)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", key, err)
	}
	if !ok {
		return nil, ErrNotFound
	}

	data, err := s.blobs.Fetch(ctx, obj.URL)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	return data, nil
}

// Load returns the document at key, writing def there first if it does not exist.
// The seed write runs under the key's serializer and re-checks for the
// document, so it never overwrites a concurrent mutation.
func (s *Store) Load(ctx context.Context, key string, def any) ([]byte, error) {
	data, err := s.Get(ctx, key)
	if !errors.Is(err, ErrNotFound) {
		return data, err
	}

	err = s.Update(ctx, key, func(ctx context.Context) error {
		data, err = s.Get(ctx, key)
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		data, err = json.Marshal(def)
		if err != nil {
			return fmt.Errorf("encode default %s: %w", key, err)
		}
		if err := s.put(ctx, key, data); err != nil {
			return err
		}
		slog.Info("document seeded", "key", key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save overwrites the document at key with doc
func (s *Store) Save(ctx context.Context, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.put(ctx, key, data)
}

// Update runs fn as the only mutation of key in flight in this process.
// fn should read with Get and write with Save; it must not call Load or
// Update for the same key.
func (s *Store) Update(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return s.queue.Do(ctx, key, fn)
}

func (s *Store) put(ctx context.Context, key string, data []byte) error {
	_, err := s.blobs.Put(ctx, key, data, &blob.PutOptions{ContentType: ContentType})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
