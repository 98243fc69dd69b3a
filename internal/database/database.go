// Package database opens the SQL connection shared by the repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

// Dialect identifies the SQL flavour behind a connection
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DB wraps *sql.DB with the dialect needed to rewrite placeholders.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to the database and verifies the connection.
// For sqlite the dsn is a file path; parent directories are created.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	dialect := Dialect(strings.ToLower(driver))

	switch dialect {
	case Postgres:
	case SQLite:
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == SQLite {
		// a single writer avoids SQLITE_BUSY between pooled connections
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

var numbered = regexp.MustCompile(`\$\d+`)

// Rebind rewrites $1, $2, ... placeholders for the connection's dialect.
// Queries must use each placeholder once and in ascending order.
func (db *DB) Rebind(query string) string {
	if db.Dialect == SQLite {
		return numbered.ReplaceAllString(query, "?")
	}
	return query
}

// Placeholders returns "$from, $from+1, ..." for n arguments.
func Placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(parts, ", ")
}
