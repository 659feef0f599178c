// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/safety-points/db"
)

// SQLStore keeps blobs in a single SQL table (SQLite or PostgreSQL)
type SQLStore struct {
	db      *sql.DB
	dialect string
	urls    urlMapper
}

var _ Store = (*SQLStore)(nil)

// OpenSQLite opens a SQLite database in WAL mode
func OpenSQLite(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Exec(`PRAGMA busy_timeout=5000;`); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// OpenPostgres opens and pings a PostgreSQL database
func OpenPostgres(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// NewSQLStore creates the blob table if needed and returns a store whose
// objects are published under baseURL (e.g. "http://localhost:3318/blobs").
func NewSQLStore(conn *sql.DB, dialect, baseURL string) (*SQLStore, error) {
	if err := db.CreateSchema(conn, dialect); err != nil {
		return nil, err
	}
	return &SQLStore{db: conn, dialect: dialect, urls: newURLMapper(baseURL)}, nil
}

func (s *SQLStore) List(ctx context.Context, prefix string) ([]Object, error) {
	// substr and length count characters in both dialects
	rows, err := s.db.QueryContext(ctx, db.Rebind(s.dialect, `
		SELECT pathname, content_type, length(body), uploaded_at
		FROM blob
		WHERE substr(pathname, 1, ?) = ?
		ORDER BY pathname
	`), utf8.RuneCountInString(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	defer rows.Close()

	objects := []Object{}
	for rows.Next() {
		var obj Object
		var uploadedAt int64
		if err := rows.Scan(&obj.Pathname, &obj.ContentType, &obj.Size, &uploadedAt); err != nil {
			return nil, fmt.Errorf("scan blob: %w", err)
		}
		obj.URL = s.urls.url(obj.Pathname)
		obj.UploadedAt = time.UnixMilli(uploadedAt)
		objects = append(objects, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	return objects, nil
}

func (s *SQLStore) Fetch(ctx context.Context, url string) ([]byte, error) {
	pathname, err := s.urls.pathname(url)
	if err != nil {
		return nil, err
	}
	body, _, err := s.Open(ctx, pathname)
	return body, err
}

// Open reads a blob body and content type by pathname
func (s *SQLStore) Open(ctx context.Context, pathname string) ([]byte, string, error) {
	var body []byte
	var contentType string
	err := s.db.QueryRowContext(ctx,
		db.Rebind(s.dialect, `SELECT body, content_type FROM blob WHERE pathname = ?`),
		pathname,
	).Scan(&body, &contentType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("fetch blob %s: %w", pathname, err)
	}
	return body, contentType, nil
}

func (s *SQLStore) Put(ctx context.Context, pathname string, body []byte, opts *PutOptions) (Object, error) {
	now := time.Now()
	contentType := contentTypeOf(opts)

	_, err := s.db.ExecContext(ctx, db.Rebind(s.dialect, `
		INSERT INTO blob (pathname, content_type, body, uploaded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (pathname) DO UPDATE
		SET content_type = excluded.content_type,
		    body = excluded.body,
		    uploaded_at = excluded.uploaded_at
	`), pathname, contentType, body, now.UnixMilli())
	if err != nil {
		return Object{}, fmt.Errorf("put blob %s: %w", pathname, err)
	}

	return Object{
		Pathname:    pathname,
		URL:         s.urls.url(pathname),
		ContentType: contentType,
		Size:        int64(len(body)),
		UploadedAt:  time.UnixMilli(now.UnixMilli()),
	}, nil
}
