// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// userRecord is the cached form of a user. The model hides the password hash
// from API responses via its JSON tags, so the cache entry needs its own
// encoding to keep the hash available for login checks.
type userRecord struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

func (rec *userRecord) toModel() *models.User {
	return &models.User{
		ID:        rec.ID,
		Username:  rec.Username,
		Password:  rec.Password,
		CreatedAt: rec.CreatedAt,
	}
}

// GetByUsername returns the user with the exact username, or (nil, nil) when
// no such user exists. Found users are served cache-aside; misses are not
// cached.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	key := cache.UserKey(username)

	var rec userRecord
	if found, err := cache.GetJSON(ctx, key, &rec); err == nil && found {
		return rec.toModel(), nil
	}

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}

	_ = cache.SetJSON(ctx, key, userRecord{
		ID:        user.ID,
		Username:  user.Username,
		Password:  user.Password,
		CreatedAt: user.CreatedAt,
	}, cache.UserTTL)

	return &user, nil
}

// Create inserts the user. A unique-index violation on username (two
// concurrent registrations passing the existence check) is mapped to the
// same validation error the pre-insert check produces.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Username already exists")
		}
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.UserKey(user.Username))
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite reports "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
