package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductLike records a user's like on a product.
// The combination of ProductID and UserID must be unique; the composite unique
// index is the storage-level guard against duplicate likes, including two
// concurrent requests from the same user. Rows are insert-only: there is no
// unlike in this marketplace.
type ProductLike struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string    `gorm:"type:uuid;not null;uniqueIndex:idx_product_user" json:"product_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_product_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when one is not provided.
func (l *ProductLike) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
