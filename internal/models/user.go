// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account on the marketplace.
type User struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"not null;uniqueIndex" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	DisplayName string    `json:"display_name"`
	Role        string    `gorm:"not null;default:user" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when one is not provided.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
