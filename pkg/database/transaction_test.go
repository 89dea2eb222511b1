package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", "file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE items (name TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func countItems(t *testing.T, db *sqlx.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM items`))
	return n
}

func insert(ctx context.Context, tx *sqlx.Tx) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO items (name) VALUES ('x')`)
	return err
}

func TestWithSQLTransaction_Commit(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)

	err := WithSQLTransaction(ctx, db, func(tx *sqlx.Tx) error {
		return insert(ctx, tx)
	})

	require.NoError(t, err)
	assert.Equal(t, 1, countItems(t, db))
}

func TestWithSQLTransaction_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	boom := errors.New("boom")

	err := WithSQLTransaction(ctx, db, func(tx *sqlx.Tx) error {
		require.NoError(t, insert(ctx, tx))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countItems(t, db))
}

func TestWithSQLTransaction_RollbackOnPanic(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = WithSQLTransaction(ctx, db, func(tx *sqlx.Tx) error {
			require.NoError(t, insert(ctx, tx))
			panic("boom")
		})
	})
	assert.Equal(t, 0, countItems(t, db))
}
