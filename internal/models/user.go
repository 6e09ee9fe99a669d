// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Users are only ever created by the
// register endpoint; no exposed operation updates or deletes them.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never the plaintext
	CreatedAt time.Time `json:"createdAt"`
}
