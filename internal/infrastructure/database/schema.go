package database

import (
	"context"
	"database/sql"
	"fmt"
)

// goqu dialect names
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id     BIGSERIAL PRIMARY KEY,
		title  VARCHAR(255) NOT NULL,
		price  BIGINT NOT NULL CHECK (price >= 0),
		status VARCHAR(20) NOT NULL CHECK (status IN ('PUBLISHED', 'UNPUBLISHED'))
	)`,
	`CREATE TABLE IF NOT EXISTS authors (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		birth_date DATE NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_authors_name ON authors (name)`,
	`CREATE TABLE IF NOT EXISTS book_author_relations (
		book_id   BIGINT NOT NULL REFERENCES books (id),
		author_id BIGINT NOT NULL REFERENCES authors (id),
		PRIMARY KEY (book_id, author_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_book_author_relations_author ON book_author_relations (author_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		title  TEXT NOT NULL,
		price  INTEGER NOT NULL CHECK (price >= 0),
		status TEXT NOT NULL CHECK (status IN ('PUBLISHED', 'UNPUBLISHED'))
	)`,
	`CREATE TABLE IF NOT EXISTS authors (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		birth_date TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_authors_name ON authors (name)`,
	`CREATE TABLE IF NOT EXISTS book_author_relations (
		book_id   INTEGER NOT NULL REFERENCES books (id),
		author_id INTEGER NOT NULL REFERENCES authors (id),
		PRIMARY KEY (book_id, author_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_book_author_relations_author ON book_author_relations (author_id)`,
}

// Execer is satisfied by *sql.DB, *sql.Tx, *sqlx.DB and *sqlx.Tx
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Schema returns the DDL statements for a goqu dialect name
func Schema(dialect string) ([]string, error) {
	switch dialect {
	case DialectPostgres:
		return postgresSchema, nil
	case DialectSQLite:
		return sqliteSchema, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// ApplySchema creates missing tables and indexes. Idempotent.
func ApplySchema(ctx context.Context, db Execer, dialect string) error {
	stmts, err := Schema(dialect)
	if err != nil {
		return err
	}

	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}

	return nil
}
