package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authormodel "bookmanager-backend/internal/domains/author/model"
	"bookmanager-backend/internal/domains/book/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ResolveStatus(current model.BookStatus, requested string) (model.BookStatus, error) {
	args := m.Called(current, requested)
	return args.Get(0).(model.BookStatus), args.Error(1)
}

func (m *mockService) ResolveAuthors(ctx context.Context, inputs []authormodel.AuthorInput) ([]authormodel.AuthorID, error) {
	args := m.Called(ctx, inputs)
	ids, _ := args.Get(0).([]authormodel.AuthorID)
	return ids, args.Error(1)
}

func (m *mockService) CreateBook(ctx context.Context, req model.BookRequest) (*model.MessageResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*model.MessageResponse)
	return resp, args.Error(1)
}

func (m *mockService) UpdateBook(ctx context.Context, id model.BookID, req model.BookRequest) (*model.MessageResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*model.MessageResponse)
	return resp, args.Error(1)
}

func (m *mockService) ListBooksByAuthor(ctx context.Context, authorID authormodel.AuthorID) (*model.BookListResponse, error) {
	args := m.Called(ctx, authorID)
	resp, _ := args.Get(0).(*model.BookListResponse)
	return resp, args.Error(1)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func setup(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	books := r.Group("/api/v1/books")
	books.GET("/authors/:authorId", h.ListBooksByAuthor)
	books.POST("", h.CreateBook)
	books.PUT("/:id", h.UpdateBook)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

var validBody = model.BookRequest{
	Title:   "T",
	Price:   100,
	Status:  "PUBLISHED",
	Authors: []authormodel.AuthorInput{{Name: "A", BirthDate: "1990-01-01"}},
}

func TestCreateBook(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateBook", mock.Anything, validBody).Return(&model.MessageResponse{Message: "ok"}, nil)

	w, env := do(t, setup(svc), http.MethodPost, "/api/v1/books", validBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"message":"ok"}`, string(env.Data))
	svc.AssertExpectations(t)
}

func TestCreateBook_MalformedBody(t *testing.T) {
	svc := new(mockService)

	w, env := do(t, setup(svc), http.MethodPost, "/api/v1/books", `{"title":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_BODY", env.Error.Code)
	svc.AssertNotCalled(t, "CreateBook", mock.Anything, mock.Anything)
}

func TestCreateBook_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "no authors", err: model.ErrNoAuthors, wantStatus: http.StatusBadRequest, wantCode: "NO_AUTHORS"},
		{
			name:       "invalid author input",
			err:        fmt.Errorf("%w: author birth date cannot be in the future", model.ErrInvalidAuthorInput),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_AUTHOR_INPUT",
			wantMsg:    "author birth date cannot be in the future",
		},
		{name: "invalid status", err: model.ErrInvalidStatus, wantStatus: http.StatusBadRequest, wantCode: "INVALID_STATUS"},
		{name: "illegal transition", err: model.ErrIllegalTransition, wantStatus: http.StatusBadRequest, wantCode: "ILLEGAL_TRANSITION"},
		{name: "not found", err: model.ErrBookNotFound, wantStatus: http.StatusNotFound, wantCode: "BOOK_NOT_FOUND"},
		{
			name:       "relation write failure is internal",
			err:        fmt.Errorf("%w: wrote 1 of 2 rows", model.ErrRelationWriteFailed),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "Internal server error",
		},
		{
			name:       "unexpected error hides detail",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("CreateBook", mock.Anything, mock.Anything).Return(nil, tt.err)

			w, env := do(t, setup(svc), http.MethodPost, "/api/v1/books", validBody)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			if tt.wantMsg != "" {
				assert.Contains(t, env.Error.Message, tt.wantMsg)
			}
			assert.NotContains(t, env.Error.Message, "connection refused")
		})
	}
}

func TestCreateBook_FieldErrorsCarryDetails(t *testing.T) {
	svc := new(mockService)
	fieldErrs := validation.Errors{"price": errors.New("price must be 0 or greater")}
	svc.On("CreateBook", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %w", model.ErrInvalidRequest, fieldErrs))

	w, env := do(t, setup(svc), http.MethodPost, "/api/v1/books", validBody)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	assert.JSONEq(t, `{"price":"price must be 0 or greater"}`, string(env.Error.Details))
}

func TestUpdateBook(t *testing.T) {
	svc := new(mockService)
	svc.On("UpdateBook", mock.Anything, model.BookID(7), validBody).Return(&model.MessageResponse{Message: "ok"}, nil)

	w, env := do(t, setup(svc), http.MethodPut, "/api/v1/books/7", validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"ok"}`, string(env.Data))
	svc.AssertExpectations(t)
}

func TestInvalidIDs(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "update non numeric", method: http.MethodPut, path: "/api/v1/books/abc"},
		{name: "update zero", method: http.MethodPut, path: "/api/v1/books/0"},
		{name: "list negative", method: http.MethodGet, path: "/api/v1/books/authors/-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)

			w, env := do(t, setup(svc), tt.method, tt.path, validBody)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, "INVALID_ID", env.Error.Code)
			assert.Empty(t, svc.Calls)
		})
	}
}

func TestListBooksByAuthor(t *testing.T) {
	svc := new(mockService)
	svc.On("ListBooksByAuthor", mock.Anything, authormodel.AuthorID(3)).Return(&model.BookListResponse{
		Books: []model.BookListItem{{
			ID:     1,
			Title:  "T",
			Price:  100,
			Status: model.StatusPublished,
			Authors: []authormodel.AuthorResponse{
				{ID: 3, Name: "A", BirthDate: "1990-01-01"},
				{ID: 4, Name: "B", BirthDate: "1991-02-02"},
			},
		}},
	}, nil)

	w, env := do(t, setup(svc), http.MethodGet, "/api/v1/books/authors/3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"books":[{"id":1,"title":"T","price":100,"status":"PUBLISHED","authors":[
		{"id":3,"name":"A","birthDate":"1990-01-01"},
		{"id":4,"name":"B","birthDate":"1991-02-02"}]}]}`, string(env.Data))
}
