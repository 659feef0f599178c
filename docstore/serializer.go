// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"context"
	"sync"
)

// Serializer runs tasks one at a time per key, in submission order.
// Tasks for different keys do not wait on each other.
type Serializer struct {
	mu    sync.Mutex
	tails map[string]chan struct{}
}

func NewSerializer() *Serializer {
	return &Serializer{tails: make(map[string]chan struct{})}
}

// Do waits for every task previously submitted under key to finish, then
// runs fn. A task that fails or panics still releases the next one.
// Do is not re-entrant: fn must not call Do with the same key.
func (s *Serializer) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	done := make(chan struct{})

	s.mu.Lock()
	prev := s.tails[key]
	s.tails[key] = done
	s.mu.Unlock()

	defer func() {
		close(done)
		s.mu.Lock()
		if s.tails[key] == done {
			delete(s.tails, key)
		}
		s.mu.Unlock()
	}()

	if prev != nil {
		<-prev
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
