package repository

import (
	"context"
	"fmt"

	"bookmanager-backend/internal/domains/author/model"
	"bookmanager-backend/internal/infrastructure/database"
	pkgdb "bookmanager-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface on pgx.
// q is either the pool or an open transaction.
type postgresRepository struct {
	q pkgdb.Querier
}

// NewPostgresRepository creates an author repository bound to q
func NewPostgresRepository(q pkgdb.Querier) RepositoryInterface {
	return &postgresRepository{q: q}
}

func (r *postgresRepository) FindByNames(ctx context.Context, names []string) ([]model.Author, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query, args, err := selectByNamesSQL(database.DialectPostgres, names)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find authors by names: %w", err)
	}
	defer rows.Close()

	var authors []model.Author
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.BirthDate); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) BulkCreate(ctx context.Context, authors []model.Author) ([]model.AuthorID, error) {
	if len(authors) == 0 {
		return nil, nil
	}

	query, args, err := insertSQL(database.DialectPostgres, authors, func(a model.Author) any {
		return a.BirthDate
	}, true)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert authors: %w", err)
	}
	defer rows.Close()

	ids := make([]model.AuthorID, 0, len(authors))
	for rows.Next() {
		var id model.AuthorID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan author id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("insert authors: %w", err)
	}

	return ids, nil
}
