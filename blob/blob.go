// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blob

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound   = errors.New("blob not found")
	ErrForeignURL = errors.New("url does not belong to this store")
)

// Object describes a stored blob
type Object struct {
	Pathname    string    `json:"pathname"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type PutOptions struct {
	ContentType string
}

// Store is a key-value object store addressed by pathname.
// Put always overwrites; there is no version or precondition check.
type Store interface {
	// List returns every object whose pathname starts with prefix.
	List(ctx context.Context, prefix string) ([]Object, error)
	// Fetch reads the body of the object published at url.
	// Returns ErrNotFound if nothing is stored there.
	Fetch(ctx context.Context, url string) ([]byte, error)
	// Put writes body at pathname, replacing any existing object.
	Put(ctx context.Context, pathname string, body []byte, opts *PutOptions) (Object, error)
}

// Find returns the object stored at exactly pathname, if any
func Find(ctx context.Context, s Store, pathname string) (Object, bool, error) {
	objects, err := s.List(ctx, pathname)
	if err != nil {
		return Object{}, false, err
	}
	for _, obj := range objects {
		if obj.Pathname == pathname {
			return obj, true, nil
		}
	}
	return Object{}, false, nil
}

// urlMapper converts between pathnames and public URLs under a base
type urlMapper struct {
	base string
}

func newURLMapper(base string) urlMapper {
	return urlMapper{base: strings.TrimRight(base, "/")}
}

func (m urlMapper) url(pathname string) string {
	return m.base + "/" + pathname
}

func (m urlMapper) pathname(url string) (string, error) {
	p, ok := strings.CutPrefix(url, m.base+"/")
	if !ok || p == "" {
		return "", ErrForeignURL
	}
	return p, nil
}

func contentTypeOf(opts *PutOptions) string {
	if opts == nil || opts.ContentType == "" {
		return "application/octet-stream"
	}
	return opts.ContentType
}
