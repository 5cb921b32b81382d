package server

import (
	"tomati/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDashboardStats returns marketplace-wide counters for the admin dashboard.
func (s *Server) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := s.statsRepo.Dashboard(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(stats)
}
