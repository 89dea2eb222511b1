package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	authormodel "bookmanager-backend/internal/domains/author/model"
	authorrepo "bookmanager-backend/internal/domains/author/repository"
	"bookmanager-backend/internal/domains/book/model"
	"bookmanager-backend/internal/infrastructure/database"
	pkgdb "bookmanager-backend/pkg/database"
)

const pgDialect = database.DialectPostgres

// NewPostgresStore wires the book store on a pgx pool
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Books:      &postgresBookRepository{q: pool},
		Lists:      &postgresListQuery{q: pool},
		UnitOfWork: &postgresUnitOfWork{pool: pool},
	}
}

type postgresUnitOfWork struct {
	pool *pgxpool.Pool
}

func (u *postgresUnitOfWork) Do(ctx context.Context, fn func(repos Repositories) error) error {
	return pkgdb.WithTransaction(ctx, u.pool, func(tx pgx.Tx) error {
		return fn(Repositories{
			Books:     &postgresBookRepository{q: tx},
			Authors:   authorrepo.NewPostgresRepository(tx),
			Relations: &postgresRelationRepository{q: tx},
		})
	})
}

// postgresBookRepository implements BookRepository
type postgresBookRepository struct {
	q pkgdb.Querier
}

func (r *postgresBookRepository) FindByID(ctx context.Context, id model.BookID) (*model.Book, error) {
	query, args, err := selectBookSQL(pgDialect, id)
	if err != nil {
		return nil, err
	}

	var book model.Book
	var status string
	err = r.q.QueryRow(ctx, query, args...).Scan(&book.ID, &book.Title, &book.Price, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book %d: %w", id, err)
	}
	book.Status = model.BookStatus(status)

	return &book, nil
}

func (r *postgresBookRepository) Create(ctx context.Context, book *model.Book) (model.BookID, error) {
	query, args, err := insertBookSQL(pgDialect, book, true)
	if err != nil {
		return 0, err
	}

	var id model.BookID
	if err := r.q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}
	return id, nil
}

func (r *postgresBookRepository) Update(ctx context.Context, book *model.Book) error {
	query, args, err := updateBookSQL(pgDialect, book)
	if err != nil {
		return err
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// postgresRelationRepository implements RelationRepository
type postgresRelationRepository struct {
	q pkgdb.Querier
}

func (r *postgresRelationRepository) DeleteByBookID(ctx context.Context, bookID model.BookID) error {
	query, args, err := deleteRelationsSQL(pgDialect, bookID)
	if err != nil {
		return err
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete relations of book %d: %w", bookID, err)
	}
	return nil
}

func (r *postgresRelationRepository) BatchCreate(ctx context.Context, bookID model.BookID, authorIDs []authormodel.AuthorID) error {
	if len(authorIDs) == 0 {
		return fmt.Errorf("%w: no authors for book %d", model.ErrRelationWriteFailed, bookID)
	}

	query, args, err := insertRelationsSQL(pgDialect, bookID, authorIDs)
	if err != nil {
		return err
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrRelationWriteFailed, err)
	}
	if n := tag.RowsAffected(); n != int64(len(authorIDs)) {
		return fmt.Errorf("%w: wrote %d of %d rows", model.ErrRelationWriteFailed, n, len(authorIDs))
	}
	return nil
}

// postgresListQuery implements ListQuery
type postgresListQuery struct {
	q pkgdb.Querier
}

func (r *postgresListQuery) FindByAuthorID(ctx context.Context, authorID authormodel.AuthorID) ([]model.BookListItem, error) {
	query, args, err := listByAuthorSQL(pgDialect, authorID)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books of author %d: %w", authorID, err)
	}
	defer rows.Close()

	var joined []model.BookAuthorRow
	for rows.Next() {
		var row model.BookAuthorRow
		var status string
		if err := rows.Scan(
			&row.BookID,
			&row.Title,
			&row.Price,
			&status,
			&row.AuthorID,
			&row.AuthorName,
			&row.AuthorBirthDate,
		); err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		row.Status = model.BookStatus(status)
		joined = append(joined, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}

	return model.GroupBookRows(joined), nil
}
