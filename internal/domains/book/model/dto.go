package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	authormodel "bookmanager-backend/internal/domains/author/model"
)

// MessageOK is the acknowledgement returned by successful writes
const MessageOK = "ok"

// BookRequest is the payload of both create and update. Update overwrites
// every field, so nothing here is optional.
type BookRequest struct {
	Title   string                    `json:"title"`
	Price   int64                     `json:"price"`
	Status  string                    `json:"status"`
	Authors []authormodel.AuthorInput `json:"authors"`
}

// Validate checks field presence and ranges. Birth date format and the
// status enum are checked by the domain rules afterwards.
func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			authormodel.NotBlank.Error("title is required"),
			validation.Length(1, 255).Error("title must be at most 255 characters"),
		),
		validation.Field(&r.Price,
			validation.Min(0).Error("price must be 0 or greater"),
		),
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
		),
		validation.Field(&r.Authors),
	)
}

// MessageResponse acknowledges a write
type MessageResponse struct {
	Message string `json:"message"`
}

// BookListResponse wraps the books returned for one author
type BookListResponse struct {
	Books []BookListItem `json:"books"`
}
