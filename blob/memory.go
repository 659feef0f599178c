// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blob

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryObject struct {
	body        []byte
	contentType string
	uploadedAt  time.Time
}

// MemoryStore is a process-local Store. Contents are lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	urls    urlMapper
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]memoryObject),
		urls:    newURLMapper(baseURL),
	}
}

func (s *MemoryStore) List(ctx context.Context, prefix string) ([]Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects := []Object{}
	for pathname, o := range s.objects {
		if !strings.HasPrefix(pathname, prefix) {
			continue
		}
		objects = append(objects, Object{
			Pathname:    pathname,
			URL:         s.urls.url(pathname),
			ContentType: o.contentType,
			Size:        int64(len(o.body)),
			UploadedAt:  o.uploadedAt,
		})
	}
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Pathname < objects[j].Pathname
	})
	return objects, nil
}

func (s *MemoryStore) Fetch(ctx context.Context, url string) ([]byte, error) {
	pathname, err := s.urls.pathname(url)
	if err != nil {
		return nil, err
	}
	body, _, err := s.Open(ctx, pathname)
	return body, err
}

// Open reads a blob body and content type by pathname
func (s *MemoryStore) Open(ctx context.Context, pathname string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.objects[pathname]
	if !ok {
		return nil, "", ErrNotFound
	}
	return append([]byte(nil), o.body...), o.contentType, nil
}

func (s *MemoryStore) Put(ctx context.Context, pathname string, body []byte, opts *PutOptions) (Object, error) {
	o := memoryObject{
		body:        append([]byte(nil), body...),
		contentType: contentTypeOf(opts),
		uploadedAt:  time.Now(),
	}

	s.mu.Lock()
	s.objects[pathname] = o
	s.mu.Unlock()

	return Object{
		Pathname:    pathname,
		URL:         s.urls.url(pathname),
		ContentType: o.contentType,
		Size:        int64(len(o.body)),
		UploadedAt:  o.uploadedAt,
	}, nil
}
