package repository

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	authormodel "bookmanager-backend/internal/domains/author/model"
	"bookmanager-backend/internal/domains/book/model"
)

const (
	tableBooks     = "books"
	tableRelations = "book_author_relations"
	tableAuthors   = "authors"

	colID       = "id"
	colTitle    = "title"
	colPrice    = "price"
	colStatus   = "status"
	colBookID   = "book_id"
	colAuthorID = "author_id"
)

func selectBookSQL(dialect string, id model.BookID) (string, []any, error) {
	query, args, err := goqu.Dialect(dialect).
		From(tableBooks).
		Select(colID, colTitle, colPrice, colStatus).
		Where(goqu.C(colID).Eq(int64(id))).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build find book query: %w", err)
	}
	return query, args, nil
}

func insertBookSQL(dialect string, book *model.Book, returning bool) (string, []any, error) {
	ds := goqu.Dialect(dialect).
		Insert(tableBooks).
		Rows(goqu.Record{
			colTitle:  book.Title,
			colPrice:  book.Price,
			colStatus: string(book.Status),
		}).
		Prepared(true)
	if returning {
		ds = ds.Returning(goqu.C(colID))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build insert book query: %w", err)
	}
	return query, args, nil
}

func updateBookSQL(dialect string, book *model.Book) (string, []any, error) {
	query, args, err := goqu.Dialect(dialect).
		Update(tableBooks).
		Set(goqu.Record{
			colTitle:  book.Title,
			colPrice:  book.Price,
			colStatus: string(book.Status),
		}).
		Where(goqu.C(colID).Eq(int64(book.ID))).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build update book query: %w", err)
	}
	return query, args, nil
}

func deleteRelationsSQL(dialect string, bookID model.BookID) (string, []any, error) {
	query, args, err := goqu.Dialect(dialect).
		Delete(tableRelations).
		Where(goqu.C(colBookID).Eq(int64(bookID))).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build delete relations query: %w", err)
	}
	return query, args, nil
}

func insertRelationsSQL(dialect string, bookID model.BookID, authorIDs []authormodel.AuthorID) (string, []any, error) {
	rows := make([]any, len(authorIDs))
	for i, authorID := range authorIDs {
		rows[i] = goqu.Record{colBookID: int64(bookID), colAuthorID: int64(authorID)}
	}

	query, args, err := goqu.Dialect(dialect).
		Insert(tableRelations).
		Rows(rows...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build insert relations query: %w", err)
	}
	return query, args, nil
}

// Column aliases of the joined list query
const (
	aliasBookID          = "book_id"
	aliasTitle           = "title"
	aliasPrice           = "price"
	aliasStatus          = "status"
	aliasAuthorID        = "author_id"
	aliasAuthorName      = "author_name"
	aliasAuthorBirthDate = "author_birth_date"
)

// listByAuthorSQL joins books to all of their authors, restricted to books
// related to authorID. The filter is a subquery so co-authors stay in the result.
func listByAuthorSQL(dialect string, authorID authormodel.AuthorID) (string, []any, error) {
	builder := goqu.Dialect(dialect)

	related := builder.
		From(tableRelations).
		Select(colBookID).
		Where(goqu.C(colAuthorID).Eq(int64(authorID)))

	query, args, err := builder.
		From(goqu.T(tableBooks).As("b")).
		Join(goqu.T(tableRelations).As("r"), goqu.On(goqu.I("r.book_id").Eq(goqu.I("b.id")))).
		Join(goqu.T(tableAuthors).As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("r.author_id")))).
		Select(
			goqu.I("b.id").As(aliasBookID),
			goqu.I("b.title").As(aliasTitle),
			goqu.I("b.price").As(aliasPrice),
			goqu.I("b.status").As(aliasStatus),
			goqu.I("a.id").As(aliasAuthorID),
			goqu.I("a.name").As(aliasAuthorName),
			goqu.I("a.birth_date").As(aliasAuthorBirthDate),
		).
		Where(goqu.I("b.id").In(related)).
		Order(goqu.I("b.id").Asc(), goqu.I("a.id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build list books query: %w", err)
	}
	return query, args, nil
}
