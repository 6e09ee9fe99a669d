package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBlogRepository is a mock of the BlogRepository interface
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) List(ctx context.Context) ([]models.Blog, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *MockBlogRepository) ListByAuthor(ctx context.Context, author string) ([]models.Blog, error) {
	args := m.Called(ctx, author)
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *MockBlogRepository) SearchByTitle(ctx context.Context, title string) ([]models.Blog, error) {
	args := m.Called(ctx, title)
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *MockBlogRepository) Update(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// multipartBody builds a multipart request body from text fields and an
// optional image file.
func multipartBody(t *testing.T, fields map[string]string, imageName string, imageContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		fw, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write(imageContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func validBlogFields() map[string]string {
	return map[string]string{
		"title":        "Category Theory",
		"content":      "arrows everywhere",
		"author":       "alice",
		"category":     "math",
		"externalLink": "https://example.com",
	}
}

func TestCreateBlog(t *testing.T) {
	tests := []struct {
		name           string
		fields         map[string]string
		mockSetup      func(repo *MockBlogRepository)
		expectedStatus int
	}{
		{
			name:   "Success",
			fields: validBlogFields(),
			mockSetup: func(repo *MockBlogRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Missing Title",
			fields: map[string]string{
				"content": "c", "author": "a", "category": "x",
			},
			mockSetup:      func(repo *MockBlogRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Category",
			fields: map[string]string{
				"title": "t", "content": "c", "author": "a",
			},
			mockSetup:      func(repo *MockBlogRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Repository Error",
			fields: validBlogFields(),
			mockSetup: func(repo *MockBlogRepository) {
				repo.On("Create", mock.Anything, mock.Anything).
					Return(models.NewInternalError(assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBlogRepository)
			tt.mockSetup(mockRepo)
			s := &Server{blogRepo: mockRepo}

			app := fiber.New()
			app.Post("/blogs/create", s.CreateBlog)

			body, contentType := multipartBody(t, tt.fields, "", nil)
			req := httptest.NewRequest(http.MethodPost, "/blogs/create", body)
			req.Header.Set("Content-Type", contentType)

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			// A validation failure must not reach the repository.
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetBlogs(t *testing.T) {
	blogs := []models.Blog{
		{ID: 1, Title: "One", Author: "alice", Content: "c", Category: "x"},
		{ID: 2, Title: "Two", Author: "bob", Content: "c", Category: "x"},
	}

	tests := []struct {
		name      string
		path      string
		mockSetup func(repo *MockBlogRepository)
		expected  int
	}{
		{
			name: "All Blogs",
			path: "/blogs",
			mockSetup: func(repo *MockBlogRepository) {
				repo.On("List", mock.Anything).Return(blogs, nil)
			},
			expected: 2,
		},
		{
			name: "Filtered By Author",
			path: "/blogs?username=alice",
			mockSetup: func(repo *MockBlogRepository) {
				repo.On("ListByAuthor", mock.Anything, "alice").Return(blogs[:1], nil)
			},
			expected: 1,
		},
		{
			name: "Empty Result Is Still A List",
			path: "/blogs?username=nobody",
			mockSetup: func(repo *MockBlogRepository) {
				repo.On("ListByAuthor", mock.Anything, "nobody").Return([]models.Blog(nil), nil)
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBlogRepository)
			tt.mockSetup(mockRepo)
			s := &Server{blogRepo: mockRepo}

			app := fiber.New()
			app.Get("/blogs", s.GetBlogs)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var decoded struct {
				Blogs []models.Blog `json:"blogs"`
			}
			require.NoError(t, json.Unmarshal(raw, &decoded))
			assert.NotNil(t, decoded.Blogs)
			assert.Len(t, decoded.Blogs, tt.expected)
		})
	}
}

func TestSearchBlogs(t *testing.T) {
	mockRepo := new(MockBlogRepository)
	mockRepo.On("SearchByTitle", mock.Anything, "cat").
		Return([]models.Blog{{ID: 1, Title: "Category Theory"}}, nil)
	mockRepo.On("List", mock.Anything).
		Return([]models.Blog{{ID: 1}, {ID: 2}}, nil)

	s := &Server{blogRepo: mockRepo}
	app := fiber.New()
	app.Get("/blogs/search", s.SearchBlogs)

	// With a title query the substring filter runs.
	req := httptest.NewRequest(http.MethodGet, "/blogs/search?title=cat", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Without it, everything comes back.
	req = httptest.NewRequest(http.MethodGet, "/blogs/search", nil)
	resp2, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	mockRepo.AssertExpectations(t)
}

func TestUpdateBlog_NotFound(t *testing.T) {
	mockRepo := new(MockBlogRepository)
	mockRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("Blog", 99))

	s := &Server{blogRepo: mockRepo}
	app := fiber.New()
	app.Put("/blogs/update/:id", s.UpdateBlog)

	body, contentType := multipartBody(t, validBlogFields(), "", nil)
	req := httptest.NewRequest(http.MethodPut, "/blogs/update/99", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateBlog_LookupFailure(t *testing.T) {
	mockRepo := new(MockBlogRepository)
	mockRepo.On("GetByID", mock.Anything, uint(7)).
		Return(nil, models.NewInternalError(assert.AnError))

	s := &Server{blogRepo: mockRepo}
	app := fiber.New()
	app.Put("/blogs/update/:id", s.UpdateBlog)

	body, contentType := multipartBody(t, validBlogFields(), "", nil)
	req := httptest.NewRequest(http.MethodPut, "/blogs/update/7", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	// A DB or cache failure is not a missing blog.
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// The body stays generic; the cause is for the log only.
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded models.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Internal server error", decoded.Error)
	assert.NotContains(t, string(raw), assert.AnError.Error())

	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateBlog_MissingFields(t *testing.T) {
	mockRepo := new(MockBlogRepository)
	mockRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Blog{ID: 1, Title: "Old"}, nil)

	s := &Server{blogRepo: mockRepo}
	app := fiber.New()
	app.Put("/blogs/update/:id", s.UpdateBlog)

	body, contentType := multipartBody(t, map[string]string{"title": "New"}, "", nil)
	req := httptest.NewRequest(http.MethodPut, "/blogs/update/1", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteBlog(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockSetup      func(repo *MockBlogRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			path: "/blogs/1",
			mockSetup: func(repo *MockBlogRepository) {
				repo.On("GetByID", mock.Anything, uint(1)).Return(&models.Blog{ID: 1}, nil)
				repo.On("Delete", mock.Anything, uint(1)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Not Found",
			path: "/blogs/99",
			mockSetup: func(repo *MockBlogRepository) {
				repo.On("GetByID", mock.Anything, uint(99)).
					Return(nil, models.NewNotFoundError("Blog", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Lookup Failure",
			path: "/blogs/7",
			mockSetup: func(repo *MockBlogRepository) {
				repo.On("GetByID", mock.Anything, uint(7)).
					Return(nil, models.NewInternalError(assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "Invalid ID",
			path:           "/blogs/abc",
			mockSetup:      func(repo *MockBlogRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBlogRepository)
			tt.mockSetup(mockRepo)
			s := &Server{blogRepo: mockRepo}

			app := fiber.New()
			app.Delete("/blogs/:id", s.DeleteBlog)

			req := httptest.NewRequest(http.MethodDelete, tt.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}
