package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bookmanager-backend/internal/domains/author/model"
	"bookmanager-backend/internal/infrastructure/database"
)

// authorRow mirrors the sqlite authors table, where birth_date is TEXT
type authorRow struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	BirthDate string `db:"birth_date"`
}

// sqliteRepository implements RepositoryInterface on sqlx.
// db is either *sqlx.DB or *sqlx.Tx.
type sqliteRepository struct {
	db sqlx.ExtContext
}

// NewSQLiteRepository creates an author repository bound to db
func NewSQLiteRepository(db sqlx.ExtContext) RepositoryInterface {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) FindByNames(ctx context.Context, names []string) ([]model.Author, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query, args, err := selectByNamesSQL(database.DialectSQLite, names)
	if err != nil {
		return nil, err
	}

	var rows []authorRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find authors by names: %w", err)
	}

	authors := make([]model.Author, 0, len(rows))
	for _, row := range rows {
		a, err := row.toModel()
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, nil
}

// BulkCreate inserts row by row because the sqlite3 dialect has no RETURNING.
// The caller's transaction keeps the batch atomic.
func (r *sqliteRepository) BulkCreate(ctx context.Context, authors []model.Author) ([]model.AuthorID, error) {
	ids := make([]model.AuthorID, 0, len(authors))
	for _, a := range authors {
		query, args, err := insertSQL(database.DialectSQLite, []model.Author{a}, func(a model.Author) any {
			return a.BirthDate.Format(model.BirthDateLayout)
		}, false)
		if err != nil {
			return nil, err
		}

		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("insert author %q: %w", a.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("read author id: %w", err)
		}
		ids = append(ids, model.AuthorID(id))
	}
	return ids, nil
}

func (row authorRow) toModel() (model.Author, error) {
	birthDate, err := model.ParseStoredDate(row.BirthDate)
	if err != nil {
		return model.Author{}, fmt.Errorf("author %d: %w", row.ID, err)
	}
	return model.Author{ID: model.AuthorID(row.ID), Name: row.Name, BirthDate: birthDate}, nil
}
