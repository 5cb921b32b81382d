package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Advertisement is a paid banner shown in a given screen position, optionally
// scoped to a category.
type Advertisement struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	ImageURL        string    `json:"image_url"`
	LinkURL         string    `json:"link_url"`
	Position        string    `gorm:"not null;index" json:"position"`
	Category        string    `gorm:"index" json:"category"`
	ImpressionCount int       `gorm:"not null;default:0" json:"impression_count"`
	ClickCount      int       `gorm:"not null;default:0" json:"click_count"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when one is not provided.
func (a *Advertisement) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
