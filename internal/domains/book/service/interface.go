package service

import (
	"context"

	authormodel "bookmanager-backend/internal/domains/author/model"
	"bookmanager-backend/internal/domains/book/model"
)

// ServiceInterface - book write workflow and read side
type ServiceInterface interface {
	ResolveStatus(current model.BookStatus, requested string) (model.BookStatus, error)
	ResolveAuthors(ctx context.Context, inputs []authormodel.AuthorInput) ([]authormodel.AuthorID, error)
	CreateBook(ctx context.Context, req model.BookRequest) (*model.MessageResponse, error)
	UpdateBook(ctx context.Context, id model.BookID, req model.BookRequest) (*model.MessageResponse, error)
	ListBooksByAuthor(ctx context.Context, authorID authormodel.AuthorID) (*model.BookListResponse, error)
}
