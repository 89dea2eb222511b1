package model

import (
	"time"

	authormodel "bookmanager-backend/internal/domains/author/model"
)

// BookListItem is one book with every author credited on it
type BookListItem struct {
	ID      BookID                       `json:"id"`
	Title   string                       `json:"title"`
	Price   int64                        `json:"price"`
	Status  BookStatus                   `json:"status"`
	Authors []authormodel.AuthorResponse `json:"authors"`
}

// BookAuthorRow is one row of the books x relations x authors join
type BookAuthorRow struct {
	BookID          BookID
	Title           string
	Price           int64
	Status          BookStatus
	AuthorID        authormodel.AuthorID
	AuthorName      string
	AuthorBirthDate time.Time
}

// GroupBookRows folds joined rows into one item per book, keeping the order in
// which books first appear.
func GroupBookRows(rows []BookAuthorRow) []BookListItem {
	items := make([]BookListItem, 0)
	index := make(map[BookID]int)

	for _, row := range rows {
		i, ok := index[row.BookID]
		if !ok {
			i = len(items)
			index[row.BookID] = i
			items = append(items, BookListItem{
				ID:      row.BookID,
				Title:   row.Title,
				Price:   row.Price,
				Status:  row.Status,
				Authors: make([]authormodel.AuthorResponse, 0, 1),
			})
		}

		author := authormodel.Author{ID: row.AuthorID, Name: row.AuthorName, BirthDate: row.AuthorBirthDate}
		items[i].Authors = append(items[i].Authors, author.ToResponse())
	}

	return items
}
