package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// SQLiteDB wraps a single-writer SQLite handle
type SQLiteDB struct {
	DB  *sqlx.DB
	DSN string
}

// NewSQLiteDB creates an unconnected SQLiteDB for a file path
func NewSQLiteDB(path string) *SQLiteDB {
	return &SQLiteDB{DSN: "file:" + path + "?cache=shared&mode=rwc&_fk=1&_busy_timeout=5000"}
}

// NewInMemorySQLiteDB creates a named in-memory database that lives as long as its connection
func NewInMemorySQLiteDB(name string) *SQLiteDB {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	return &SQLiteDB{DSN: "file:" + name + "?mode=memory&cache=shared&_fk=1"}
}

// Connect opens the handle, verifies it and applies the schema
func (s *SQLiteDB) Connect(ctx context.Context) error {
	db, err := sqlx.Open("sqlite3", s.DSN)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// One connection serializes writers and keeps in-memory databases alive
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := s.ping(ctx, db); err != nil {
		db.Close()
		return err
	}

	if err := ApplySchema(ctx, db, DialectSQLite); err != nil {
		db.Close()
		return fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	s.DB = db
	log.Info().Str("dsn", s.DSN).Msg("[DATABASE] SQLite ready")
	return nil
}

func (s *SQLiteDB) ping(ctx context.Context, db *sqlx.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

// HealthCheck pings the database
func (s *SQLiteDB) HealthCheck(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("sqlite database is not initialized")
	}
	return s.ping(ctx, s.DB)
}

// Close releases the handle. Safe to call more than once.
func (s *SQLiteDB) Close() error {
	if s.DB == nil {
		return nil
	}
	err := s.DB.Close()
	s.DB = nil
	return err
}
