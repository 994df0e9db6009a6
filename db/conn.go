// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names a supported SQL backend
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

var ErrUnknownDialect = errors.New("unknown database type")

// ParseDialect validates a database type name
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(s)) {
	case SQLite:
		return SQLite, nil
	case Postgres, "postgresql":
		return Postgres, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDialect, s)
}

// DB wraps *sql.DB so queries can be written once with ? placeholders
// and run against either dialect.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Tx is a transaction with the same placeholder handling as DB
type Tx struct {
	*sql.Tx
	dialect Dialect
}

// Open connects to the database and verifies the connection
func Open(dialect Dialect, url string) (*DB, error) {
	conn, err := sql.Open(string(dialect), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; a single connection avoids SQLITE_BUSY
	if dialect == SQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: conn, dialect: dialect}, nil
}

// Dialect reports which backend the connection talks to
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Rebind rewrites ? placeholders into the dialect's bind syntax
func (d *DB) Rebind(query string) string {
	return rebind(d.dialect, query)
}

func (d *DB) Exec(query string, args ...any) (sql.Result, error) {
	return d.DB.Exec(d.Rebind(query), args...)
}

func (d *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return d.DB.Query(d.Rebind(query), args...)
}

func (d *DB) QueryRow(query string, args ...any) *sql.Row {
	return d.DB.QueryRow(d.Rebind(query), args...)
}

// Begin starts a transaction
func (d *DB) Begin() (*Tx, error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, dialect: d.dialect}, nil
}

func (t *Tx) Exec(query string, args ...any) (sql.Result, error) {
	return t.Tx.Exec(rebind(t.dialect, query), args...)
}

func (t *Tx) QueryRow(query string, args ...any) *sql.Row {
	return t.Tx.QueryRow(rebind(t.dialect, query), args...)
}

// rebind replaces each ? with $1, $2, ... for postgres.
// Queries in this module never contain a literal question mark.
func rebind(dialect Dialect, query string) string {
	if dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
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
