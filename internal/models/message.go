package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a buyer/seller chat message attached to a product listing.
type Message struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID   string    `gorm:"type:uuid;not null;index" json:"product_id"`
	SenderID    string    `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID string    `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when one is not provided.
func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
