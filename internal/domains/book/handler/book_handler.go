package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authormodel "bookmanager-backend/internal/domains/author/model"
	"bookmanager-backend/internal/domains/book/model"
	"bookmanager-backend/internal/domains/book/service"
	"bookmanager-backend/internal/shared/response"
)

// Handler - HTTP Handler (single file)
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooksByAuthor - GET /v1/books/authors/:authorId
func (h *Handler) ListBooksByAuthor(c *gin.Context) {
	authorID, ok := parseID(c, "authorId")
	if !ok {
		return
	}

	books, err := h.service.ListBooksByAuthor(c.Request.Context(), authormodel.AuthorID(authorID))
	if HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, books)
}

// CreateBook - POST /v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.CreateBook(c.Request.Context(), req)
	if HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// UpdateBook - PUT /v1/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.UpdateBook(c.Request.Context(), model.BookID(id), req)
	if HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// parseID reads a positive integer path parameter or answers 400
func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "INVALID_ID", param+" must be a positive integer")
		return 0, false
	}
	return id, true
}
