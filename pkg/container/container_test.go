package container

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmanager-backend/internal/config"
	authormodel "bookmanager-backend/internal/domains/author/model"
	"bookmanager-backend/internal/domains/book/model"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		App: config.AppConfig{Environment: "test"},
		Storage: config.StorageConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "books.db"),
		},
	}
}

func TestNew_SQLite(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	assert.Nil(t, c.Postgres)
	require.NotNil(t, c.SQLite)
	assert.NoError(t, c.HealthCheck(ctx))

	_, err = c.BookService.CreateBook(ctx, model.BookRequest{
		Title:   "T",
		Price:   1,
		Status:  "UNPUBLISHED",
		Authors: []authormodel.AuthorInput{{Name: "A", BirthDate: "1990-01-01"}},
	})
	assert.NoError(t, err)
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Storage.Driver = "mongo"

	c, err := New(context.Background(), cfg)

	assert.Nil(t, c)
	assert.ErrorContains(t, err, "unsupported storage driver")
}

func TestCleanup_Idempotent(t *testing.T) {
	c, err := New(context.Background(), sqliteConfig(t))
	require.NoError(t, err)

	c.Cleanup()
	c.Cleanup()
	assert.Error(t, c.HealthCheck(context.Background()))
}
