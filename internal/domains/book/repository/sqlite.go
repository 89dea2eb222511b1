package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	authormodel "bookmanager-backend/internal/domains/author/model"
	authorrepo "bookmanager-backend/internal/domains/author/repository"
	"bookmanager-backend/internal/domains/book/model"
	"bookmanager-backend/internal/infrastructure/database"
	pkgdb "bookmanager-backend/pkg/database"
)

const sqliteDialect = database.DialectSQLite

// NewSQLiteStore wires the book store on a sqlx handle
func NewSQLiteStore(db *sqlx.DB) *Store {
	return &Store{
		Books:      &sqliteBookRepository{db: db},
		Lists:      &sqliteListQuery{db: db},
		UnitOfWork: &sqliteUnitOfWork{db: db},
	}
}

type sqliteUnitOfWork struct {
	db *sqlx.DB
}

func (u *sqliteUnitOfWork) Do(ctx context.Context, fn func(repos Repositories) error) error {
	return pkgdb.WithSQLTransaction(ctx, u.db, func(tx *sqlx.Tx) error {
		return fn(Repositories{
			Books:     &sqliteBookRepository{db: tx},
			Authors:   authorrepo.NewSQLiteRepository(tx),
			Relations: &sqliteRelationRepository{db: tx},
		})
	})
}

type bookRow struct {
	ID     int64  `db:"id"`
	Title  string `db:"title"`
	Price  int64  `db:"price"`
	Status string `db:"status"`
}

type bookAuthorRow struct {
	BookID          int64  `db:"book_id"`
	Title           string `db:"title"`
	Price           int64  `db:"price"`
	Status          string `db:"status"`
	AuthorID        int64  `db:"author_id"`
	AuthorName      string `db:"author_name"`
	AuthorBirthDate string `db:"author_birth_date"`
}

// sqliteBookRepository implements BookRepository
type sqliteBookRepository struct {
	db sqlx.ExtContext
}

func (r *sqliteBookRepository) FindByID(ctx context.Context, id model.BookID) (*model.Book, error) {
	query, args, err := selectBookSQL(sqliteDialect, id)
	if err != nil {
		return nil, err
	}

	var row bookRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book %d: %w", id, err)
	}

	return &model.Book{
		ID:     model.BookID(row.ID),
		Title:  row.Title,
		Price:  row.Price,
		Status: model.BookStatus(row.Status),
	}, nil
}

func (r *sqliteBookRepository) Create(ctx context.Context, book *model.Book) (model.BookID, error) {
	query, args, err := insertBookSQL(sqliteDialect, book, false)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read book id: %w", err)
	}
	return model.BookID(id), nil
}

func (r *sqliteBookRepository) Update(ctx context.Context, book *model.Book) error {
	query, args, err := updateBookSQL(sqliteDialect, book)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}
	if n == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// sqliteRelationRepository implements RelationRepository
type sqliteRelationRepository struct {
	db sqlx.ExtContext
}

func (r *sqliteRelationRepository) DeleteByBookID(ctx context.Context, bookID model.BookID) error {
	query, args, err := deleteRelationsSQL(sqliteDialect, bookID)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete relations of book %d: %w", bookID, err)
	}
	return nil
}

func (r *sqliteRelationRepository) BatchCreate(ctx context.Context, bookID model.BookID, authorIDs []authormodel.AuthorID) error {
	if len(authorIDs) == 0 {
		return fmt.Errorf("%w: no authors for book %d", model.ErrRelationWriteFailed, bookID)
	}

	query, args, err := insertRelationsSQL(sqliteDialect, bookID, authorIDs)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrRelationWriteFailed, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrRelationWriteFailed, err)
	}
	if n != int64(len(authorIDs)) {
		return fmt.Errorf("%w: wrote %d of %d rows", model.ErrRelationWriteFailed, n, len(authorIDs))
	}
	return nil
}

// sqliteListQuery implements ListQuery
type sqliteListQuery struct {
	db sqlx.ExtContext
}

func (r *sqliteListQuery) FindByAuthorID(ctx context.Context, authorID authormodel.AuthorID) ([]model.BookListItem, error) {
	query, args, err := listByAuthorSQL(sqliteDialect, authorID)
	if err != nil {
		return nil, err
	}

	var rows []bookAuthorRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list books of author %d: %w", authorID, err)
	}

	joined := make([]model.BookAuthorRow, 0, len(rows))
	for _, row := range rows {
		birthDate, err := authormodel.ParseStoredDate(row.AuthorBirthDate)
		if err != nil {
			return nil, fmt.Errorf("author %d: %w", row.AuthorID, err)
		}
		joined = append(joined, model.BookAuthorRow{
			BookID:          model.BookID(row.BookID),
			Title:           row.Title,
			Price:           row.Price,
			Status:          model.BookStatus(row.Status),
			AuthorID:        authormodel.AuthorID(row.AuthorID),
			AuthorName:      row.AuthorName,
			AuthorBirthDate: birthDate,
		})
	}

	return model.GroupBookRows(joined), nil
}
