package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"bookmanager-backend/internal/config"
	"bookmanager-backend/internal/infrastructure/database"
	"bookmanager-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := migrate(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
	log.Info().Str("storage", cfg.Storage.Driver).Msg("Schema is up to date")
}

// migrate applies the schema for the configured driver through database/sql
func migrate(ctx context.Context, cfg *config.Config) error {
	driver, dsn, dialect, err := target(cfg)
	if err != nil {
		return err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", driver, err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to reach %s: %w", driver, err)
	}

	return database.ApplySchema(ctx, db, dialect)
}

func target(cfg *config.Config) (driver, dsn, dialect string, err error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return "postgres", cfg.PostgresDSN(), database.DialectPostgres, nil
	case config.DriverSQLite:
		return "sqlite3", "file:" + cfg.Storage.SQLitePath + "?_fk=1", database.DialectSQLite, nil
	default:
		return "", "", "", fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
