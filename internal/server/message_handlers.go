package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"tomati/internal/middleware"
	"tomati/internal/models"
	"tomati/internal/observability"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SendMessage sends a chat message about a product. Without an explicit
// recipient the message goes to the seller. The product comes from the URL on
// the nested route or from the body on /api/messages.
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		ProductID   string `json:"product_id"`
		Content     string `json:"content"`
		RecipientID string `json:"recipient_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Content) == "" {
		return models.RespondWithAppError(c, models.NewValidationError("content is required"))
	}

	productID := c.Params("id")
	if productID == "" {
		productID = req.ProductID
	}
	if productID == "" {
		return models.RespondWithAppError(c, models.NewValidationError("product_id is required"))
	}
	senderID := currentUserID(c)

	product, err := s.productRepo.GetByID(c.UserContext(), productID, "")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithAppError(c, models.NewNotFoundError("Product", productID))
		}
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	recipientID := req.RecipientID
	if recipientID == "" {
		recipientID = product.UserID
	}
	if recipientID == senderID {
		return models.RespondWithAppError(c, models.NewValidationError("Vous ne pouvez pas vous envoyer un message"))
	}

	message := &models.Message{
		ProductID:   productID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     strings.TrimSpace(req.Content),
	}
	if err := s.messageRepo.Create(c.UserContext(), message); err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	s.notifyNewMessage(c, product, message)

	return c.Status(fiber.StatusCreated).JSON(message)
}

// notifyNewMessage persists and pushes the recipient's notification. Failures
// are logged, not propagated: the message itself is already stored.
func (s *Server) notifyNewMessage(c *fiber.Ctx, product *models.Product, message *models.Message) {
	ctx := c.UserContext()
	notification := &models.Notification{
		UserID:    message.RecipientID,
		Title:     "💬 Nouveau message",
		Message:   "Vous avez reçu un message concernant \"" + product.Title + "\"",
		Type:      models.NotificationNewMessage,
		RelatedID: product.ID,
	}
	if err := s.notifRepo.Create(ctx, notification); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to persist message notification",
			slog.String("message_id", message.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	observability.NotificationsSent.WithLabelValues(models.NotificationNewMessage).Inc()

	if payload, err := json.Marshal(notification); err == nil {
		if err := s.notifier.PublishUser(ctx, message.RecipientID, string(payload)); err != nil {
			middleware.Logger.ErrorContext(ctx, "failed to publish message notification",
				slog.String("message_id", message.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// ListProductMessages returns the authenticated user's conversation on a product.
func (s *Server) ListProductMessages(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	messages, err := s.messageRepo.ListForProduct(c.UserContext(), c.Params("id"), currentUserID(c), limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// ListMessages returns all conversations the authenticated user takes part in.
func (s *Server) ListMessages(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	messages, err := s.messageRepo.ListForUser(c.UserContext(), currentUserID(c), limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// MarkMessageRead marks a received message as read.
func (s *Server) MarkMessageRead(c *fiber.Ctx) error {
	err := s.messageRepo.MarkRead(c.UserContext(), c.Params("id"), currentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithAppError(c, models.NewNotFoundError("Message", c.Params("id")))
		}
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"message": "Message marqué comme lu"})
}
