package container

import (
	"context"
	"fmt"
	"time"

	"bookmanager-backend/internal/config"
	bookHandler "bookmanager-backend/internal/domains/book/handler"
	bookRepo "bookmanager-backend/internal/domains/book/repository"
	bookService "bookmanager-backend/internal/domains/book/service"
	"bookmanager-backend/internal/infrastructure/database"
	"bookmanager-backend/pkg/logger"
)

// Container is the root of the dependency graph.
// Exactly one of Postgres and SQLite is set, depending on the storage driver.
type Container struct {
	Config *config.Config

	// Infrastructure
	Postgres *database.PostgresDB
	SQLite   *database.SQLiteDB

	// Repositories
	BookStore *bookRepo.Store

	// Services
	BookService bookService.ServiceInterface

	// Handlers
	BookHandler *bookHandler.Handler
}

// NewContainer loads configuration from the environment and builds the graph
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Info("Config loaded", map[string]interface{}{
		"env":     cfg.App.Environment,
		"storage": cfg.Storage.Driver,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return New(ctx, cfg)
}

// New builds the graph for cfg. Order: storage, repositories, services, handlers.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initStorage(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.BookService = bookService.NewService(c.BookStore, time.Now)
	c.BookHandler = bookHandler.NewHandler(c.BookService)

	logger.Info("Container initialized", map[string]interface{}{
		"storage": cfg.Storage.Driver,
	})
	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	switch c.Config.Storage.Driver {
	case config.DriverSQLite:
		db := database.NewSQLiteDB(c.Config.Storage.SQLitePath)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to open sqlite: %w", err)
		}
		c.SQLite = db
		c.BookStore = bookRepo.NewSQLiteStore(db.DB)

	case config.DriverPostgres:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.Postgres = db

		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
		c.BookStore = bookRepo.NewPostgresStore(db.Pool)

	default:
		return fmt.Errorf("unsupported storage driver %q", c.Config.Storage.Driver)
	}

	return nil
}

// HealthCheck pings whichever storage is configured
func (c *Container) HealthCheck(ctx context.Context) error {
	switch {
	case c.Postgres != nil:
		return c.Postgres.Ping(ctx)
	case c.SQLite != nil:
		return c.SQLite.HealthCheck(ctx)
	default:
		return fmt.Errorf("no storage configured")
	}
}

// Cleanup releases storage. Safe to call more than once.
func (c *Container) Cleanup() {
	if c.Postgres != nil {
		if err := c.Postgres.Close(); err != nil {
			logger.Error("Failed to close postgres", err)
		}
	}
	if c.SQLite != nil {
		if err := c.SQLite.Close(); err != nil {
			logger.Error("Failed to close sqlite", err)
		}
	}
	logger.Info("Container cleaned up", nil)
}
