package model

import "fmt"

// BookStatus is the publication state of a book
type BookStatus string

const (
	StatusUnpublished BookStatus = "UNPUBLISHED"
	StatusPublished   BookStatus = "PUBLISHED"
)

// IsValid reports whether s is a member of the closed enum
func (s BookStatus) IsValid() bool {
	switch s {
	case StatusPublished, StatusUnpublished:
		return true
	}
	return false
}

func (s BookStatus) String() string {
	return string(s)
}

// ParseStatus matches raw against the enum literals exactly
func ParseStatus(raw string) (BookStatus, error) {
	s := BookStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q (allowed: %s, %s)", ErrInvalidStatus, raw, StatusPublished, StatusUnpublished)
	}
	return s, nil
}

// ResolveStatus returns the status a book moves to when requested is applied on
// top of current. An empty current means initial assignment, where only enum
// membership is checked. Once published, a book cannot go back to unpublished.
func ResolveStatus(current BookStatus, requested string) (BookStatus, error) {
	next, err := ParseStatus(requested)
	if err != nil {
		return "", err
	}

	if current == StatusPublished && next == StatusUnpublished {
		return "", fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, next)
	}

	return next, nil
}
