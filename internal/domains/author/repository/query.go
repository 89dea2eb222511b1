package repository

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"bookmanager-backend/internal/domains/author/model"
)

const (
	tableAuthors = "authors"

	colID        = "id"
	colName      = "name"
	colBirthDate = "birth_date"
)

func selectByNamesSQL(dialect string, names []string) (string, []any, error) {
	query, args, err := goqu.Dialect(dialect).
		From(tableAuthors).
		Select(colID, colName, colBirthDate).
		Where(goqu.C(colName).In(names)).
		Order(goqu.I(colID).Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build find authors query: %w", err)
	}
	return query, args, nil
}

// insertSQL builds a single INSERT for authors. birthDate converts the date to
// the representation the dialect stores.
func insertSQL(dialect string, authors []model.Author, birthDate func(model.Author) any, returning bool) (string, []any, error) {
	rows := make([]any, len(authors))
	for i, a := range authors {
		rows[i] = goqu.Record{colName: a.Name, colBirthDate: birthDate(a)}
	}

	ds := goqu.Dialect(dialect).Insert(tableAuthors).Rows(rows...).Prepared(true)
	if returning {
		ds = ds.Returning(goqu.C(colID))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build insert authors query: %w", err)
	}
	return query, args, nil
}
