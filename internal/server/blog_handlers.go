package server

import (
	"errors"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts the :id route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// blogForm holds the multipart text fields shared by create and update.
type blogForm struct {
	Title        string
	Content      string
	Author       string
	Category     string
	ExternalLink string
}

// parseBlogForm reads the multipart fields and checks that the four required
// ones are present. Validation happens before any uploaded file is written to
// disk, so a 400 never leaves an orphaned upload behind.
func (s *Server) parseBlogForm(c *fiber.Ctx) (*blogForm, error) {
	form := &blogForm{
		Title:        c.FormValue("title"),
		Content:      c.FormValue("content"),
		Author:       c.FormValue("author"),
		Category:     c.FormValue("category"),
		ExternalLink: c.FormValue("externalLink"),
	}

	if form.Title == "" || form.Content == "" || form.Author == "" || form.Category == "" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title, content, author and category are required"))
		return nil, errResponseWritten
	}
	return form, nil
}

// respondLookupError renders a failed blog lookup: 404 when the blog does
// not exist, 500 for anything else (DB or cache failure).
func respondLookupError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// saveUploadedImage stores the optional "image" multipart file and returns
// its public URL path. Returns ("", nil) when no file was sent.
func (s *Server) saveUploadedImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// No file in the form; images are optional everywhere.
		return "", nil
	}
	return s.files.Save(file)
}

// CreateBlog handles POST /blogs/create
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	form, err := s.parseBlogForm(c)
	if err != nil {
		return nil
	}

	imagePath, err := s.saveUploadedImage(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	blog := &models.Blog{
		Title:        form.Title,
		Content:      form.Content,
		Author:       form.Author,
		Category:     form.Category,
		ExternalLink: form.ExternalLink,
		Image:        imagePath,
	}

	// The uploaded file is not rolled back if this insert fails.
	if err := s.blogRepo.Create(c.Context(), blog); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blog created successfully",
		"blog":    blog,
	})
}

// GetBlogs handles GET /blogs?username=...
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	ctx := c.Context()

	var (
		blogs []models.Blog
		err   error
	)
	if username := c.Query("username"); username != "" {
		// Exact, case-sensitive author match.
		blogs, err = s.blogRepo.ListByAuthor(ctx, username)
	} else {
		blogs, err = s.blogRepo.List(ctx)
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if blogs == nil {
		blogs = []models.Blog{}
	}
	return c.JSON(fiber.Map{"blogs": blogs})
}

// SearchBlogs handles GET /blogs/search?title=...
func (s *Server) SearchBlogs(c *fiber.Ctx) error {
	ctx := c.Context()

	var (
		blogs []models.Blog
		err   error
	)
	if title := c.Query("title"); title != "" {
		blogs, err = s.blogRepo.SearchByTitle(ctx, title)
	} else {
		blogs, err = s.blogRepo.List(ctx)
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if blogs == nil {
		blogs = []models.Blog{}
	}
	return c.JSON(fiber.Map{"blogs": blogs})
}

// UpdateBlog handles PUT /blogs/update/:id
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	ctx := c.Context()
	blogID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return respondLookupError(c, err)
	}

	form, err := s.parseBlogForm(c)
	if err != nil {
		return nil
	}

	imagePath, err := s.saveUploadedImage(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// All text fields are overwritten unconditionally; sending an empty
	// externalLink clears it. The image is only replaced when a new file
	// was uploaded.
	blog.Title = form.Title
	blog.Content = form.Content
	blog.Author = form.Author
	blog.Category = form.Category
	blog.ExternalLink = form.ExternalLink
	if imagePath != "" {
		blog.Image = imagePath
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blog updated successfully",
		"blog":    blog,
	})
}

// DeleteBlog handles DELETE /blogs/:id. The blog's uploaded image, if any,
// stays on disk.
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	ctx := c.Context()
	blogID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return respondLookupError(c, err)
	}

	if err := s.blogRepo.Delete(ctx, blogID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blog deleted successfully",
	})
}
