package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// BlogRepository defines persistence operations for blogs.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	List(ctx context.Context) ([]models.Blog, error)
	ListByAuthor(ctx context.Context, author string) ([]models.Blog, error)
	SearchByTitle(ctx context.Context, title string) ([]models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id uint) error
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository returns a new BlogRepository implementation.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	observability.BlogWrites.WithLabelValues("create").Inc()
	return nil
}

// GetByID reads a single blog through the cache-aside layer.
func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	err := cache.Aside(ctx, cache.BlogKey(id), &blog, cache.BlogTTL, func() error {
		if err := r.db.WithContext(ctx).First(&blog, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Blog", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// List returns every blog in the store's natural order.
func (r *blogRepository) List(ctx context.Context) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.db.WithContext(ctx).Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

// ListByAuthor returns blogs whose author matches exactly (case-sensitive).
func (r *blogRepository) ListByAuthor(ctx context.Context, author string) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.db.WithContext(ctx).Where("author = ?", author).Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

// SearchByTitle returns blogs whose title contains the value as a
// case-insensitive substring. The value is passed into the LIKE pattern
// unescaped, so % and _ keep their wildcard meaning.
func (r *blogRepository) SearchByTitle(ctx context.Context, title string) ([]models.Blog, error) {
	var blogs []models.Blog
	like := "%" + title + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE LOWER(?)", like).
		Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

// Update saves all fields of the blog and drops its cache entry.
func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, blog.ID)
	observability.BlogWrites.WithLabelValues("update").Inc()
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Blog{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, id)
	observability.BlogWrites.WithLabelValues("delete").Inc()
	return nil
}
