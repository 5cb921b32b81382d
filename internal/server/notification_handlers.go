package server

import (
	"errors"

	"tomati/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListNotifications returns the authenticated user's notification feed.
func (s *Server) ListNotifications(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	notifications, err := s.notifRepo.ListForUser(c.UserContext(), currentUserID(c), limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

// GetUnreadCount returns how many notifications are still unread.
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.notifRepo.UnreadCount(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"count": count})
}

// MarkNotificationRead marks one notification as read.
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	err := s.notifRepo.MarkRead(c.UserContext(), c.Params("id"), currentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithAppError(c, models.NewNotFoundError("Notification", c.Params("id")))
		}
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"message": "Notification marquée comme lue"})
}

// MarkAllNotificationsRead marks every unread notification as read.
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := s.notifRepo.MarkAllRead(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"message": "Toutes les notifications marquées comme lues"})
}
