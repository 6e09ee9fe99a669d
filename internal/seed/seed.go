// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var categories = []string{
	"Technology", "Travel", "Food", "Music", "Books",
	"Science", "Programming", "Philosophy", "Art", "Fitness",
}

// Seeder populates the database with demo users and blogs.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes every seeded row. Blogs go first so listings never show
// authors that were deleted mid-clean.
func (s *Seeder) ClearAll() error {
	log.Println("Cleaning database...")
	if err := s.db.Exec("DELETE FROM blogs").Error; err != nil {
		return fmt.Errorf("failed to clear blogs: %w", err)
	}
	if err := s.db.Exec("DELETE FROM users").Error; err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}

// SeedUsers creates n users, all with the password "password123".
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Password: string(hash),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedBlogs creates n blogs attributed to random seeded users, with a
// realistic created-at spread over the past 90 days.
func (s *Seeder) SeedBlogs(users []models.User, n int) error {
	if len(users) == 0 {
		return fmt.Errorf("no users to attribute blogs to")
	}

	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		blog := models.Blog{
			Title:    gofakeit.Sentence(4),
			Content:  gofakeit.Paragraph(2, 4, 8, "\n"),
			Author:   author.Username,
			Category: categories[s.rng.Intn(len(categories))],
		}
		if s.rng.Intn(3) == 0 {
			blog.ExternalLink = gofakeit.URL()
		}

		daysBack := s.rng.Intn(90)
		hoursBack := s.rng.Intn(24)
		blog.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

		if err := s.db.Create(&blog).Error; err != nil {
			return fmt.Errorf("failed to seed blog: %w", err)
		}
	}
	log.Printf("Seeded %d blogs", n)
	return nil
}
