package repository

import (
	"context"

	"tomati/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListForProduct(ctx context.Context, productID, userID string, limit, offset int) ([]*models.Message, error)
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]*models.Message, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}

// messageRepository implements MessageRepository
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListForProduct returns the conversation on a product visible to userID,
// meaning messages the user sent or received.
func (r *messageRepository) ListForProduct(ctx context.Context, productID, userID string, limit, offset int) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND (sender_id = ? OR recipient_id = ?)", productID, userID, userID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) ListForUser(ctx context.Context, userID string, limit, offset int) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
