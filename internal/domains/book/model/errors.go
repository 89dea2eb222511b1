package model

import (
	"errors"

	authormodel "bookmanager-backend/internal/domains/author/model"
)

var (
	ErrInvalidStatus       = errors.New("invalid book status")
	ErrIllegalTransition   = errors.New("illegal status transition: a published book cannot be unpublished")
	ErrNoAuthors           = errors.New("book must have at least one author")
	ErrBookNotFound        = errors.New("book not found")
	ErrRelationWriteFailed = errors.New("failed to write book-author relations")
	ErrInvalidRequest      = errors.New("invalid request")

	// Raised by author resolution, mapped alongside book errors
	ErrInvalidAuthorInput = authormodel.ErrInvalidAuthorInput
	ErrNoAuthorsResolved  = authormodel.ErrNoAuthorsResolved
)
