package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a rating a buyer leaves on a product. One review per
// (product, reviewer) pair, enforced by the composite unique index.
type Review struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_product_reviewer" json:"product_id"`
	ReviewerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_product_reviewer" json:"reviewer_id"`
	Reviewer   User      `gorm:"foreignKey:ReviewerID" json:"reviewer"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when one is not provided.
func (r *Review) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
