package service

import (
	"context"
	"fmt"
	"time"

	authormodel "bookmanager-backend/internal/domains/author/model"
	authorservice "bookmanager-backend/internal/domains/author/service"
	"bookmanager-backend/internal/domains/book/model"
	"bookmanager-backend/internal/domains/book/repository"
	"bookmanager-backend/pkg/logger"
)

// BookService - Implements ServiceInterface
type BookService struct {
	store *repository.Store
	now   func() time.Time
}

// NewService - Constructor with DI. A nil now falls back to time.Now.
func NewService(store *repository.Store, now func() time.Time) ServiceInterface {
	if now == nil {
		now = time.Now
	}
	return &BookService{
		store: store,
		now:   now,
	}
}

// ResolveStatus applies the publication lifecycle rule
func (s *BookService) ResolveStatus(current model.BookStatus, requested string) (model.BookStatus, error) {
	return model.ResolveStatus(current, requested)
}

// ResolveAuthors validates inputs and returns their ids, creating missing
// authors in one transaction.
func (s *BookService) ResolveAuthors(ctx context.Context, inputs []authormodel.AuthorInput) ([]authormodel.AuthorID, error) {
	authors, err := authormodel.ValidateInputs(inputs, s.now())
	if err != nil {
		return nil, err
	}

	var ids []authormodel.AuthorID
	err = s.store.UnitOfWork.Do(ctx, func(repos repository.Repositories) error {
		ids, err = authorservice.NewResolver(repos.Authors).Resolve(ctx, authors)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateBook - Business logic for creating a book with its authors
func (s *BookService) CreateBook(ctx context.Context, req model.BookRequest) (*model.MessageResponse, error) {
	// 1. Validate everything before the first write
	authors, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	status, err := model.ResolveStatus("", req.Status)
	if err != nil {
		return nil, err
	}

	book := &model.Book{
		Title:  req.Title,
		Price:  req.Price,
		Status: status,
	}

	// 2. Book row, authors and relations commit together
	var authorIDs []authormodel.AuthorID
	err = s.store.UnitOfWork.Do(ctx, func(repos repository.Repositories) error {
		id, err := repos.Books.Create(ctx, book)
		if err != nil {
			return err
		}
		book.ID = id

		authorIDs, err = authorservice.NewResolver(repos.Authors).Resolve(ctx, authors)
		if err != nil {
			return err
		}

		return repos.Relations.BatchCreate(ctx, book.ID, authorIDs)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Book created", map[string]interface{}{
		"book_id": book.ID,
		"authors": len(authorIDs),
	})

	return &model.MessageResponse{Message: model.MessageOK}, nil
}

// UpdateBook - Full overwrite of a book and replacement of its author set
func (s *BookService) UpdateBook(ctx context.Context, id model.BookID, req model.BookRequest) (*model.MessageResponse, error) {
	// 1. The book must exist
	current, err := s.store.Books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. Validate against the persisted status
	authors, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	status, err := model.ResolveStatus(current.Status, req.Status)
	if err != nil {
		return nil, err
	}

	book := &model.Book{
		ID:     current.ID,
		Title:  req.Title,
		Price:  req.Price,
		Status: status,
	}

	// 3. Overwrite, then delete and re-insert relations in one transaction
	var authorIDs []authormodel.AuthorID
	err = s.store.UnitOfWork.Do(ctx, func(repos repository.Repositories) error {
		if err := repos.Books.Update(ctx, book); err != nil {
			return err
		}

		if err := repos.Relations.DeleteByBookID(ctx, book.ID); err != nil {
			return err
		}

		authorIDs, err = authorservice.NewResolver(repos.Authors).Resolve(ctx, authors)
		if err != nil {
			return err
		}

		return repos.Relations.BatchCreate(ctx, book.ID, authorIDs)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Book updated", map[string]interface{}{
		"book_id": book.ID,
		"status":  book.Status,
		"authors": len(authorIDs),
	})

	return &model.MessageResponse{Message: model.MessageOK}, nil
}

// ListBooksByAuthor returns every book of authorID with all of its co-authors
func (s *BookService) ListBooksByAuthor(ctx context.Context, authorID authormodel.AuthorID) (*model.BookListResponse, error) {
	books, err := s.store.Lists.FindByAuthorID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return &model.BookListResponse{Books: books}, nil
}

// validateRequest runs the field rules, then the birth date rules, in that order
func (s *BookService) validateRequest(req model.BookRequest) ([]authormodel.Author, error) {
	if len(req.Authors) == 0 {
		return nil, model.ErrNoAuthors
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidRequest, err)
	}

	return authormodel.ValidateInputs(req.Authors, s.now())
}
