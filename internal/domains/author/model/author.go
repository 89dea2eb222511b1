package model

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BirthDateLayout is the wire format of birth dates (yyyy-MM-dd)
const BirthDateLayout = "2006-01-02"

// AuthorID is the surrogate key assigned by storage. Zero means not persisted yet.
type AuthorID int64

// Author represents a person credited on one or more books.
// Name is the de-duplication key when books are written.
type Author struct {
	ID        AuthorID  `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	BirthDate time.Time `json:"birth_date" db:"birth_date"`
}

// NotBlank rejects strings made of whitespace only. validation.Required
// accepts them.
var NotBlank = validation.NewStringRule(func(s string) bool {
	return strings.TrimSpace(s) != ""
}, "must not be blank")

// AuthorInput is a requested author as it arrives from a caller
type AuthorInput struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
}

// Validate checks presence only. Format and range are checked by ParseBirthDate.
func (in AuthorInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name,
			validation.Required.Error("author name is required"),
			NotBlank.Error("author name is required"),
			validation.Length(1, 255).Error("author name must be at most 255 characters"),
		),
		validation.Field(&in.BirthDate,
			validation.Required.Error("author birth date is required"),
		),
	)
}

// AuthorResponse is the read-side view of an author
type AuthorResponse struct {
	ID        AuthorID `json:"id"`
	Name      string   `json:"name"`
	BirthDate string   `json:"birthDate"`
}

// ToResponse converts Author to AuthorResponse
func (a Author) ToResponse() AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		BirthDate: a.BirthDate.Format(BirthDateLayout),
	}
}

// ParseBirthDate parses a yyyy-MM-dd date and rejects dates strictly after today.
// today is compared by calendar date in its own location.
func ParseBirthDate(raw string, today time.Time) (time.Time, error) {
	birthDate, err := time.Parse(BirthDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: birth date must be in yyyy-MM-dd format (e.g. 2024-01-15), got %q",
			ErrInvalidAuthorInput, raw)
	}

	y, m, d := today.Date()
	if birthDate.After(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return time.Time{}, fmt.Errorf("%w: author birth date cannot be in the future (%s)",
			ErrInvalidAuthorInput, raw)
	}

	return birthDate, nil
}

// ParseStoredDate reads a birth date persisted as yyyy-MM-dd text
func ParseStoredDate(raw string) (time.Time, error) {
	t, err := time.Parse(BirthDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored birth date %q: %w", raw, err)
	}
	return t, nil
}

// ValidateInputs checks every requested birth date in request order and
// returns unpersisted authors. The first violation wins.
func ValidateInputs(inputs []AuthorInput, today time.Time) ([]Author, error) {
	authors := make([]Author, 0, len(inputs))
	for _, in := range inputs {
		birthDate, err := ParseBirthDate(in.BirthDate, today)
		if err != nil {
			return nil, err
		}
		authors = append(authors, Author{Name: in.Name, BirthDate: birthDate})
	}
	return authors, nil
}

// UniqueByName keeps the first author for every name, preserving order
func UniqueByName(authors []Author) []Author {
	seen := make(map[string]struct{}, len(authors))
	unique := make([]Author, 0, len(authors))
	for _, a := range authors {
		if _, ok := seen[a.Name]; ok {
			continue
		}
		seen[a.Name] = struct{}{}
		unique = append(unique, a)
	}
	return unique
}
