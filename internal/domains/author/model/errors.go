package model

import "errors"

var (
	// ErrInvalidAuthorInput covers an unparseable or future birth date
	ErrInvalidAuthorInput = errors.New("invalid author input")

	// ErrNoAuthorsResolved means resolution ended with an empty author set
	ErrNoAuthorsResolved = errors.New("no authors could be resolved")
)
