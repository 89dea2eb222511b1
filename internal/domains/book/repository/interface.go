package repository

import (
	"context"

	authormodel "bookmanager-backend/internal/domains/author/model"
	authorrepo "bookmanager-backend/internal/domains/author/repository"
	"bookmanager-backend/internal/domains/book/model"
)

// BookRepository - book row access
type BookRepository interface {
	// FindByID returns model.ErrBookNotFound when no row matches
	FindByID(ctx context.Context, id model.BookID) (*model.Book, error)
	Create(ctx context.Context, book *model.Book) (model.BookID, error)
	// Update overwrites title, price and status of book.ID
	Update(ctx context.Context, book *model.Book) error
}

// RelationRepository - book_author_relations access
type RelationRepository interface {
	DeleteByBookID(ctx context.Context, bookID model.BookID) error
	// BatchCreate writes one row per author in a single statement batch.
	// Any failed or missing row yields model.ErrRelationWriteFailed.
	BatchCreate(ctx context.Context, bookID model.BookID, authorIDs []authormodel.AuthorID) error
}

// ListQuery - joined read side
type ListQuery interface {
	// FindByAuthorID returns every book related to authorID with all of its authors
	FindByAuthorID(ctx context.Context, authorID authormodel.AuthorID) ([]model.BookListItem, error)
}

// Repositories are bound to one transaction for the duration of a unit of work
type Repositories struct {
	Books     BookRepository
	Authors   authorrepo.RepositoryInterface
	Relations RelationRepository
}

// UnitOfWork runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back on error or panic.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

// Store groups everything the book workflow needs from one storage backend
type Store struct {
	Books      BookRepository
	Lists      ListQuery
	UnitOfWork UnitOfWork
}
