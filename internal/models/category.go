package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a browsing category for listings (cars, real estate, jobs, ...).
type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when one is not provided.
func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
