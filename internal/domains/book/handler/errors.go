package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"bookmanager-backend/internal/domains/book/model"
	"bookmanager-backend/internal/shared/middleware"
	"bookmanager-backend/internal/shared/response"
)

type errorMapping struct {
	Err    error
	Status int
	Code   string
}

// bookErrors is checked in order with errors.Is
var bookErrors = []errorMapping{
	{Err: model.ErrInvalidRequest, Status: http.StatusBadRequest, Code: "INVALID_REQUEST"},
	{Err: model.ErrNoAuthors, Status: http.StatusBadRequest, Code: "NO_AUTHORS"},
	{Err: model.ErrInvalidAuthorInput, Status: http.StatusBadRequest, Code: "INVALID_AUTHOR_INPUT"},
	{Err: model.ErrInvalidStatus, Status: http.StatusBadRequest, Code: "INVALID_STATUS"},
	{Err: model.ErrIllegalTransition, Status: http.StatusBadRequest, Code: "ILLEGAL_TRANSITION"},
	{Err: model.ErrNoAuthorsResolved, Status: http.StatusBadRequest, Code: "NO_AUTHORS_RESOLVED"},
	{Err: model.ErrBookNotFound, Status: http.StatusNotFound, Code: "BOOK_NOT_FOUND"},
}

// HandleBookError writes the error response for err and reports whether it did
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for _, m := range bookErrors {
		if !errors.Is(err, m.Err) {
			continue
		}

		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			response.ErrorWithDetails(c, m.Status, m.Code, m.Err.Error(), fieldErrs)
			return true
		}
		response.ErrorResponse(c, m.Status, m.Code, err.Error())
		return true
	}

	// Unexpected failures never leak detail
	log.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(c)).
		Str("path", c.Request.URL.Path).
		Msg("[BookHandler] Unexpected error")
	response.InternalServerError(c)
	return true
}
