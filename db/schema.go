// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Supported SQL dialects
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// CreateSchema creates the blob table for the given dialect.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	var schema string
	switch dialect {
	case DialectSQLite:
		schema = sqliteSchema
	case DialectPostgres:
		schema = postgresSchema
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Rebind rewrites ? placeholders into the dialect's native form.
// Queries in this module never contain literal question marks.
func Rebind(dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS blob (
    pathname TEXT PRIMARY KEY,
    content_type TEXT NOT NULL,
    body BLOB NOT NULL,
    uploaded_at INTEGER NOT NULL
);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS blob (
    pathname TEXT PRIMARY KEY,
    content_type TEXT NOT NULL,
    body BYTEA NOT NULL,
    uploaded_at BIGINT NOT NULL
);
`
