package models

import "time"

// Blog represents a single blog post.
//
// Author is a denormalized username string with no foreign key into the
// users table; the API accepts any value and listing filters compare it
// verbatim. Image, when set, is a relative URL under /uploads.
type Blog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Author       string    `gorm:"not null;index" json:"author"`
	Category     string    `gorm:"not null" json:"category"`
	ExternalLink string    `json:"externalLink,omitempty"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
