// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation for the SQL blob backends.

# Schema Creation

CreateSchema initializes the blob table for a dialect:

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

A single table holds every stored object:

  - blob: pathname (primary key), content_type, body, uploaded_at (epoch ms)

The body column is BLOB on SQLite and BYTEA on PostgreSQL.

# Placeholders

Queries are written with ? placeholders and passed through Rebind, which
rewrites them to $1, $2, ... for PostgreSQL:

	q := db.Rebind(db.DialectPostgres, "SELECT body FROM blob WHERE pathname = ?")
*/
package db
