package repository

import (
	"context"

	"bookmanager-backend/internal/domains/author/model"
)

// RepositoryInterface - author data access used while writing books
type RepositoryInterface interface {
	// FindByNames returns every stored author whose name is in names, ordered by id.
	// An empty names slice returns no rows without touching storage.
	FindByNames(ctx context.Context, names []string) ([]model.Author, error)

	// BulkCreate inserts all authors and returns their new ids in input order
	BulkCreate(ctx context.Context, authors []model.Author) ([]model.AuthorID, error)
}
